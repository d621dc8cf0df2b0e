// Package resolver turns a chat utterance into a routing decision. Routing
// is a fixed-priority walk over a declarative tier list: the first tier
// whose predicate accepts the utterance owns it, every later tier is dead
// for that turn.
package resolver

import (
	"strings"

	"station-chat-be/internal/entity"
	"station-chat-be/pkg/resolver/extract"
	"station-chat-be/pkg/resolver/flow"
	"station-chat-be/pkg/store"
)

// Intent names the handler a resolution routes to.
type Intent string

const (
	IntentCityStatusCount Intent = "city_status_count"
	IntentViz3D           Intent = "viz_3d"
	IntentViz             Intent = "viz"
	IntentCityList        Intent = "city_list"
	IntentDirectField     Intent = "direct_field"
	IntentNearbyFlow      Intent = "nearby_flow"
	IntentFallback        Intent = "fallback"
)

// Resolution is the routing outcome plus the slots the handler needs.
type Resolution struct {
	Intent Intent
	Tier   string

	City      string
	Status    string
	ChartKind string
	ChartAll  bool
	Station   *entity.Station
	Answer    string
}

type Router struct {
	stations StationSource
	flow     *flow.Manager
}

func NewRouter(stations StationSource, flowMgr *flow.Manager) *Router {
	return &Router{stations: stations, flow: flowMgr}
}

type tier struct {
	name  string
	match func(r *Router, sess *store.Session, text string) (Resolution, bool)
}

// tiers is the routing table, highest priority first.
var tiers = []tier{
	{"count", matchCityStatusCount},
	{"viz3d", matchViz3D},
	{"viz", matchViz},
	{"list", matchCityList},
	{"field", matchDirectField},
	{"flow", matchNearbyFlow},
}

// Route walks the tier table. The caller must hold the session lock.
func (r *Router) Route(sess *store.Session, text string) Resolution {
	for _, t := range tiers {
		if res, ok := t.match(r, sess, text); ok {
			res.Tier = t.name
			return res
		}
	}
	return Resolution{Intent: IntentFallback, Tier: "fallback", Station: sess.Station}
}

func matchCityStatusCount(_ *Router, _ *store.Session, text string) (Resolution, bool) {
	cs, ok := extract.CityStatusCount(text)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Intent: IntentCityStatusCount, City: cs.City, Status: cs.Status}, true
}

func matchViz3D(_ *Router, _ *store.Session, text string) (Resolution, bool) {
	if !viz3DPattern.MatchString(text) {
		return Resolution{}, false
	}
	city, ok := extract.City(text)
	if !ok {
		city = "北京"
	}
	return Resolution{Intent: IntentViz3D, City: city}, true
}

func matchViz(_ *Router, _ *store.Session, text string) (Resolution, bool) {
	if !vizPattern.MatchString(text) {
		return Resolution{}, false
	}
	city, ok := extract.City(text)
	if !ok {
		city = "北京"
	}
	return Resolution{
		Intent:    IntentViz,
		City:      city,
		ChartKind: ChartKind(text),
		ChartAll:  vizAllPattern.MatchString(text),
	}, true
}

// listCues are the phrasings that ask for an enumeration.
var listCues = []string{"有哪些", "都有什么", "列出", "清单", "罗列", "list", "所有", "全部"}

func matchCityList(_ *Router, _ *store.Session, text string) (Resolution, bool) {
	city, hasCity := extract.City(text)
	if !hasCity {
		return Resolution{}, false
	}
	listy := false
	for _, cue := range listCues {
		if strings.Contains(text, cue) {
			listy = true
			break
		}
	}
	if !listy {
		// "城市 + 基站" is an implicit list ask, but a nearby cue means the
		// user is locating, not enumerating.
		if !strings.Contains(text, extract.StationCue) || extract.NearbyCue(text) {
			return Resolution{}, false
		}
	}
	return Resolution{Intent: IntentCityList, City: city}, true
}

func matchDirectField(r *Router, sess *store.Session, text string) (Resolution, bool) {
	st := sess.Station
	if st == nil {
		var ok bool
		st, ok = ResolveStation(r.stations, text)
		if !ok {
			return Resolution{}, false
		}
	} else if fresh, ok := ResolveStation(r.stations, text); ok && fresh.ID != st.ID {
		// An explicit mention of another station retargets the context.
		if id, hasID := extract.StationID(text); hasID && id == fresh.ID {
			st = fresh
		} else if _, hasName := extract.StationName(text); hasName {
			st = fresh
		}
	}

	answer, ok := DirectAnswer(text, st)
	if !ok {
		return Resolution{}, false
	}
	sess.Station = st
	return Resolution{Intent: IntentDirectField, Station: st, Answer: answer}, true
}

func matchNearbyFlow(r *Router, sess *store.Session, text string) (Resolution, bool) {
	if r.flow.Engaged(sess) || r.flow.CanEngage(text) {
		return Resolution{Intent: IntentNearbyFlow}, true
	}
	return Resolution{}, false
}
