package match

import (
	"testing"

	"station-chat-be/internal/entity"
)

func poi(id, name, city string, aliases ...string) *entity.POI {
	return &entity.POI{ID: id, Name: name, City: city, Aliases: aliases}
}

func TestScore(t *testing.T) {
	guomao := poi("POI-1", "国贸中心", "北京", "国贸")

	tests := []struct {
		name     string
		key      string
		cityHint string
		want     int
	}{
		{"exact alias", "国贸", "", ScoreContains + ScoreContained + ScoreToken},
		{"exact main name", "国贸中心", "", ScoreContains + ScoreContained + ScoreToken},
		{"key inside name", "国贸中", "", ScoreContains},
		{"city hint boost", "国贸", "北京", ScoreContains + ScoreContained + ScoreToken + ScoreCity},
		{"wrong city no boost", "国贸", "上海", ScoreContains + ScoreContained + ScoreToken},
		{"unrelated", "火锅店", "", 0},
		{"empty key", "", "北京", 0},
	}
	for _, tt := range tests {
		if got := Score(guomao, tt.key, tt.cityHint); got != tt.want {
			t.Errorf("%s: Score = %d; want %d", tt.name, got, tt.want)
		}
	}
}

// The containment weights are directional: for one key, a candidate whose
// name contains the key must outrank a candidate whose name the key contains.
func TestScoreDirectional(t *testing.T) {
	key := "万达广场北区"
	super := poi("POI-1", "万达广场北区购物城", "北京")
	sub := poi("POI-2", "万达广场", "北京")

	gotSuper := Score(super, key, "")
	gotSub := Score(sub, key, "")
	if gotSuper != ScoreContains {
		t.Errorf("key-in-candidate = %d; want %d", gotSuper, ScoreContains)
	}
	if gotSub != ScoreContained {
		t.Errorf("candidate-in-key = %d; want %d", gotSub, ScoreContained)
	}
	if gotSuper <= gotSub {
		t.Errorf("directional preference lost: %d <= %d", gotSuper, gotSub)
	}

	// Ordering follows, independent of pool position.
	got := Candidates([]*entity.POI{sub, super}, key, "")
	if len(got) != 2 || got[0].POI.ID != "POI-1" {
		t.Fatalf("candidate order = %+v; want POI-1 first", got)
	}
}

func TestCandidatesThreshold(t *testing.T) {
	pool := []*entity.POI{
		poi("POI-1", "万达广场", "北京"),
		poi("POI-2", "万达广场", "上海"),
		poi("POI-3", "世纪公园", "上海"),
	}

	got := Candidates(pool, "万达广场", "")
	if len(got) != 2 {
		t.Fatalf("Candidates = %d results; want 2", len(got))
	}
	for _, s := range got {
		if s.Score < MinScore {
			t.Errorf("candidate %s below threshold: %d", s.POI.ID, s.Score)
		}
	}

	if got := Candidates(pool, "烧烤摊", ""); len(got) != 0 {
		t.Errorf("unrelated key produced %d candidates", len(got))
	}
}

func TestCandidatesFirstMaxWins(t *testing.T) {
	// Equal scores: stable sort keeps pool order, so POI-1 stays first.
	pool := []*entity.POI{
		poi("POI-1", "万达广场", "北京"),
		poi("POI-2", "万达广场", "上海"),
	}
	got := Candidates(pool, "万达广场", "")
	if len(got) != 2 || got[0].POI.ID != "POI-1" {
		t.Fatalf("tie-break changed order: %+v", got)
	}

	// A city hint promotes the hinted candidate above the tie.
	got = Candidates(pool, "万达广场", "上海")
	if got[0].POI.ID != "POI-2" {
		t.Fatalf("city hint did not promote POI-2: %+v", got)
	}
}
