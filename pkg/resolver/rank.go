package resolver

import (
	"sort"
	"strings"

	"station-chat-be/internal/entity"
)

// TopK ranks the full station set against whitespace-separated query terms.
// Each term scores one point per station it hits in any field; a tiny
// recency weight breaks ties toward fresher rows without ever outweighing a
// term hit. With no terms the freshest k rows come back.
func TopK(items []*entity.Station, query string, k int) []*entity.Station {
	terms := strings.Fields(query)

	type scored struct {
		score float64
		st    *entity.Station
	}
	var ranked []scored
	for _, st := range items {
		score := 0.0
		if len(terms) > 0 {
			for _, t := range terms {
				if stationHit(st, t) {
					score++
				}
			}
			if score == 0 {
				continue
			}
		}
		score += 0.1 * float64(st.UpdatedAt) / 1e12
		ranked = append(ranked, scored{score, st})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k <= 0 {
		k = 12
	}
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]*entity.Station, len(ranked))
	for i, r := range ranked {
		out[i] = r.st
	}
	return out
}

func stationHit(st *entity.Station, term string) bool {
	t := strings.ToLower(term)
	for _, v := range []string{st.ID, st.Name, st.City, st.Vendor, st.Band, st.Status, st.Desc} {
		if strings.Contains(strings.ToLower(v), t) {
			return true
		}
	}
	return false
}
