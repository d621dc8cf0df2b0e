// Package report renders the markdown answers and aggregate summaries the
// chat surface returns for count, list and detail questions.
package report

import (
	"sort"
	"strings"

	"station-chat-be/internal/entity"
)

// UpdatedAtSummary condenses the update-time distribution of a result set.
type UpdatedAtSummary struct {
	Min  int64 `json:"min"`
	P50  int64 `json:"p50"`
	Max  int64 `json:"max"`
	Mean int64 `json:"mean"`
}

// Stats is the aggregate view over a station result set, used both by the
// nearby answer and as grounding facts for the model fallback.
type Stats struct {
	N            int               `json:"n"`
	VendorCounts map[string]int    `json:"vendor_counts"`
	StatusCounts map[string]int    `json:"status_counts"`
	BandCounts   map[string]int    `json:"band_counts"`
	UpdatedAt    *UpdatedAtSummary `json:"updated_at_summary,omitempty"`
	TopVendor    string            `json:"top_vendor,omitempty"`
}

// Aggregate computes counts by vendor, status and band plus an update-time
// summary. Empty fields count under 未知 so totals always add up.
func Aggregate(rows []*entity.Station) Stats {
	st := Stats{
		N:            len(rows),
		VendorCounts: map[string]int{},
		StatusCounts: map[string]int{},
		BandCounts:   map[string]int{},
	}

	var times []int64
	for _, r := range rows {
		st.VendorCounts[orUnknown(r.Vendor)]++
		st.StatusCounts[strings.ToLower(orUnknown(r.Status))]++
		st.BandCounts[orUnknown(r.Band)]++
		if r.UpdatedAt > 0 {
			times = append(times, r.UpdatedAt)
		}
	}

	if len(times) > 0 {
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		var sum int64
		for _, t := range times {
			sum += t
		}
		st.UpdatedAt = &UpdatedAtSummary{
			Min:  times[0],
			P50:  times[len(times)/2],
			Max:  times[len(times)-1],
			Mean: sum / int64(len(times)),
		}
	}

	// Sorted walk keeps the tie-break deterministic.
	vendors := make([]string, 0, len(st.VendorCounts))
	for v := range st.VendorCounts {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)
	best := 0
	for _, v := range vendors {
		if st.VendorCounts[v] > best {
			best = st.VendorCounts[v]
			st.TopVendor = v
		}
	}
	return st
}

func orUnknown(s string) string {
	if s == "" {
		return "未知"
	}
	return s
}
