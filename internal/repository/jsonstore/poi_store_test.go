package jsonstore

import (
	"testing"

	"station-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPOI(id, name, city string, aliases []string, popularity int) *entity.POI {
	lat, lng := 31.2, 121.4
	return &entity.POI{
		ID:         id,
		Name:       name,
		Aliases:    aliases,
		City:       city,
		District:   "测试区",
		Lat:        &lat,
		Lng:        &lng,
		Category:   "mall",
		Popularity: popularity,
	}
}

func newPOIFixture(t *testing.T) *POIStore {
	t.Helper()
	s, err := NewPOIStore(tempPath(t, "pois.json"))
	require.NoError(t, err)
	require.NoError(t, s.UpsertAll([]*entity.POI{
		testPOI("POI-1", "万达广场", "北京", []string{"万达"}, 92),
		testPOI("POI-2", "万达广场", "上海", []string{"万达"}, 85),
		testPOI("POI-3", "静安寺", "上海", nil, 88),
		testPOI("POI-4", "国贸", "北京", []string{"中国国际贸易中心"}, 90),
	}))
	return s
}

func TestPOIStoreSearchByAlias(t *testing.T) {
	s := newPOIFixture(t)

	hits := s.Search("", "万达", "", 10)
	require.Len(t, hits, 2)
	// popularity desc
	assert.Equal(t, "POI-1", hits[0].ID)
	assert.Equal(t, "POI-2", hits[1].ID)

	hits = s.Search("", "国际贸易", "", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, "国贸", hits[0].Name)
}

func TestPOIStoreSearchCityAndCategory(t *testing.T) {
	s := newPOIFixture(t)

	hits := s.Search("上海", "万达", "", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, "POI-2", hits[0].ID)

	assert.Empty(t, s.Search("广州", "", "", 10))
	assert.Len(t, s.Search("", "", "mall", 10), 4)
}

func TestPOIStoreInitIfMissing(t *testing.T) {
	path := tempPath(t, "pois.json")
	s, err := NewPOIStore(path)
	require.NoError(t, err)
	require.NoError(t, s.InitIfMissing([]*entity.POI{testPOI("POI-1", "西湖", "杭州", nil, 95)}))

	s2, err := NewPOIStore(path)
	require.NoError(t, err)
	require.NoError(t, s2.InitIfMissing([]*entity.POI{testPOI("POI-9", "珠江新城", "广州", nil, 80)}))
	_, ok := s2.Get("POI-1")
	assert.True(t, ok)
	_, ok = s2.Get("POI-9")
	assert.False(t, ok)
}

func TestPOIStoreAllPreservesOrder(t *testing.T) {
	s := newPOIFixture(t)
	all := s.All()
	require.Len(t, all, 4)
	assert.Equal(t, "POI-1", all[0].ID)
	assert.Equal(t, "POI-4", all[3].ID)
}
