// Package flow runs the multi-turn landmark disambiguation conversation.
// All pending state lives on the session, guarded by the session lock the
// caller already holds; the manager itself is stateless and safe to share.
package flow

import (
	"fmt"
	"strings"
	"time"

	"station-chat-be/internal/entity"
	"station-chat-be/pkg/geo"
	"station-chat-be/pkg/resolver/extract"
	"station-chat-be/pkg/resolver/match"
	"station-chat-be/pkg/store"
)

// POISource is the landmark pool the matcher scores against.
type POISource interface {
	All() []*entity.POI
}

// StationSource supplies the per-city station pool for nearby ranking.
type StationSource interface {
	ByCity(city string) []*entity.Station
}

// Options carries the radius window and pending-state TTL.
type Options struct {
	DefaultRadiusM int
	MinRadiusM     int
	MaxRadiusM     int
	NearbyLimit    int
	TTL            time.Duration
}

type Manager struct {
	pois     POISource
	stations StationSource
	opts     Options
	now      func() time.Time
}

func NewManager(pois POISource, stations StationSource, opts Options) *Manager {
	return &Manager{pois: pois, stations: stations, opts: opts, now: time.Now}
}

// ResultKind discriminates a finished answer from a clarification turn.
type ResultKind int

const (
	KindAnswer ResultKind = iota
	KindClarify
)

// Result is one flow turn. KindAnswer carries the resolved POI, the radius
// used and the ranked hits; KindClarify carries a question and, on the first
// ask only, the candidate lines to show.
type Result struct {
	Kind    ResultKind
	POI     *entity.POI
	RadiusM int
	Hits    []geo.NearbyStation
	Message string
	Options []string
}

// Engaged reports whether the session has a live pending candidate list.
// Expired state is purged here, so a stale session never routes into the
// selection branch.
func (m *Manager) Engaged(sess *store.Session) bool {
	if sess.Flow.Expired(m.opts.TTL, m.now()) {
		sess.Flow.Clear()
	}
	return sess.Flow.Pending()
}

// CanEngage is the entry gate for a first question: a nearby cue, or a
// landmark key that actually resolves against the POI pool. A plain
// "city + 基站" question must not start the flow.
func (m *Manager) CanEngage(text string) bool {
	key, ok := extract.POIKey(text)
	if !ok {
		return extract.NearbyCue(text)
	}
	city, _ := extract.City(text)
	return len(match.Candidates(m.pois.All(), key, city)) > 0 || extract.NearbyCue(text)
}

// Advance runs one turn. The caller must hold the session lock.
func (m *Manager) Advance(sess *store.Session, text string) Result {
	if sess.Flow.Expired(m.opts.TTL, m.now()) {
		sess.Flow.Clear()
	}

	if sess.Flow.Pending() {
		return m.advancePending(sess, text)
	}
	return m.firstAsk(sess, text)
}

func (m *Manager) firstAsk(sess *store.Session, text string) Result {
	key, _ := extract.POIKey(text)
	cityHint, _ := extract.City(text)

	var cands []*entity.POI
	for _, sc := range match.Candidates(m.pois.All(), key, cityHint) {
		cands = append(cands, sc.POI)
	}
	cands = narrowByHint(cands, text)

	switch len(cands) {
	case 0:
		return Result{
			Kind:    KindClarify,
			Message: "没找到对应地标，请补充“城市/区县 + 更具体地标 + 半径（如 1km）”。",
		}
	case 1:
		return m.answer(sess, cands[0], text, cityHint)
	default:
		sess.Flow.Candidates = cands
		sess.Flow.CityHint = cityHint
		sess.Flow.CreatedAt = m.now()
		return Result{
			Kind:    KindClarify,
			Message: fmt.Sprintf("找到 %d 个同名地标，你指的是哪一个？（可以说第几个，或补充城市/区县）", len(cands)),
			Options: describeCandidates(cands),
		}
	}
}

func (m *Manager) advancePending(sess *store.Session, text string) Result {
	cands := sess.Flow.Candidates

	chosen := pickCandidate(cands, text)
	narrowed := cands
	if chosen != nil {
		narrowed = []*entity.POI{chosen}
	} else {
		narrowed = narrowByHint(cands, text)
	}

	if len(narrowed) == 1 {
		return m.answer(sess, narrowed[0], text, sess.Flow.CityHint)
	}
	// Still ambiguous: keep waiting, no list replay.
	return Result{
		Kind:    KindClarify,
		Message: "有多个同名地标，请补充城市/区县或更具体地址（也可直接说第几个）。",
	}
}

// answer resolves the selection, ranks nearby stations and clears the
// pending state. The selection itself is transient: it feeds this one
// answer and the persisted city hint, nothing else.
func (m *Manager) answer(sess *store.Session, poi *entity.POI, text, cityHint string) Result {
	radius := m.opts.DefaultRadiusM
	if r, ok := extract.RadiusM(text); ok {
		radius = r
	} else if poi.RadiusM > 0 {
		radius = poi.RadiusM
	}
	radius = geo.ClampRadius(radius, m.opts.MinRadiusM, m.opts.MaxRadiusM)

	var hits []geo.NearbyStation
	if poi.HasCoords() {
		pool := m.stations.ByCity(poi.City)
		hits = geo.Nearby(pool, *poi.Lat, *poi.Lng, radius, m.opts.NearbyLimit)
	}

	sess.Flow.Clear()
	if cityHint == "" {
		cityHint = poi.City
	}
	sess.Flow.CityHint = cityHint

	return Result{Kind: KindAnswer, POI: poi, RadiusM: radius, Hits: hits}
}

// pickCandidate resolves an explicit choice: POI id, 1-based or negative
// index, or a unique name substring.
func pickCandidate(cands []*entity.POI, text string) *entity.POI {
	if sel, ok := extract.SelectionIndex(text); ok {
		if sel.ID != "" {
			for _, c := range cands {
				if strings.EqualFold(c.ID, sel.ID) {
					return c
				}
			}
			return nil
		}
		idx := sel.Index
		if idx < 0 {
			idx = len(cands) + 1 + idx
		}
		if idx >= 1 && idx <= len(cands) {
			return cands[idx-1]
		}
		return nil
	}

	nt := normalize(text)
	if nt == "" {
		return nil
	}
	var hit *entity.POI
	for _, c := range cands {
		if n := normalize(c.Name); n != "" && strings.Contains(n, nt) {
			if hit != nil {
				return nil
			}
			hit = c
		}
	}
	return hit
}

// narrowByHint keeps candidates whose city, district or address hint is
// mentioned in the text. No mention keeps the full list.
func narrowByHint(cands []*entity.POI, text string) []*entity.POI {
	var out []*entity.POI
	for _, c := range cands {
		if c.City != "" && strings.Contains(text, c.City) {
			out = append(out, c)
			continue
		}
		if c.District != "" && strings.Contains(text, c.District) {
			out = append(out, c)
			continue
		}
		if c.AddrHint != "" && strings.Contains(text, c.AddrHint) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return cands
	}
	return out
}

// describeCandidates renders the clarification lines. Only the name plus
// locating hints go out; ids and coordinates stay internal.
func describeCandidates(cands []*entity.POI) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		line := fmt.Sprintf("%d. %s（%s·%s", i+1, c.Name, c.City, c.District)
		if c.AddrHint != "" {
			line += "，" + c.AddrHint
		}
		line += "）"
		out[i] = line
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
