// Package match scores POI candidates against a free-text landmark key.
// The scorer is additive and fully deterministic; with the store's stable
// result order, equal scores always resolve to the same winner.
package match

import (
	"sort"
	"strings"

	"station-chat-be/internal/entity"
	"station-chat-be/pkg/resolver/extract"
)

// Scoring weights. Tunable vars rather than consts so operators can tighten
// matching without a rebuild path change. The containment weights are
// directional: a candidate containing the key beats a candidate the key
// contains, and an exact name match earns both.
var (
	ScoreContains  = 5 // key is a substring of the candidate name
	ScoreContained = 4 // candidate name is a substring of the key
	ScoreToken     = 1
	ScoreCity      = 1
	// MinScore is the acceptance threshold; below it a candidate is noise.
	MinScore = 2
)

// Scored pairs a POI with its match score.
type Scored struct {
	POI   *entity.POI
	Score int
}

// Score rates how well a POI matches the key. An optional city hint adds a
// small boost but never qualifies a candidate on its own.
func Score(p *entity.POI, key, cityHint string) int {
	if key == "" {
		return 0
	}
	k := strings.ToLower(key)
	names := append([]string{p.Name}, p.Aliases...)

	best := 0
	for _, n := range names {
		ln := strings.ToLower(n)
		s := 0
		if strings.Contains(ln, k) {
			s += ScoreContains
		}
		if strings.Contains(k, ln) {
			s += ScoreContained
		}
		if s > best {
			best = s
		}
	}

	score := best
	score += ScoreToken * sharedTokens(k, names)
	if cityHint != "" && p.City == cityHint {
		score += ScoreCity
	}
	return score
}

func sharedTokens(key string, names []string) int {
	keyTokens := make(map[string]struct{})
	for _, t := range extract.Tokens(key) {
		keyTokens[strings.ToLower(t)] = struct{}{}
	}
	if len(keyTokens) == 0 {
		return 0
	}
	shared := make(map[string]struct{})
	for _, n := range names {
		for _, t := range extract.Tokens(n) {
			lt := strings.ToLower(t)
			if _, ok := keyTokens[lt]; ok {
				shared[lt] = struct{}{}
			}
		}
	}
	return len(shared)
}

// Candidates scores the pool and returns those at or above MinScore, ordered
// by score desc. The sort is stable, so ties keep the pool's own order and
// the first maximum wins.
func Candidates(pool []*entity.POI, key, cityHint string) []Scored {
	var out []Scored
	for _, p := range pool {
		if s := Score(p, key, cityHint); s >= MinScore {
			out = append(out, Scored{POI: p, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
