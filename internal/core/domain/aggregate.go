package domain

import "sort"

// MergedValue is the consensus for one slot across every respondent.
type MergedValue string

const (
	// MergedAvailable: every contributor answered available.
	MergedAvailable MergedValue = "available"
	// MergedMaybe: no one is unavailable but at least one answered maybe.
	MergedMaybe MergedValue = "maybe"
	// MergedNone: at least one contributor is unavailable, so the slot has
	// no common color. Unavailable answers dominate but are not listed.
	MergedNone MergedValue = "none"
	// MergedNoData: nobody answered this slot.
	MergedNoData MergedValue = "no_data"
)

type Contribution struct {
	Respondent string       `json:"respondent"`
	Value      Availability `json:"value"`
}

// SlotSummary is the aggregate view of a single slot coordinate.
type SlotSummary struct {
	Coordinate    SlotCoordinate `json:"coordinate"`
	Merged        MergedValue    `json:"merged"`
	Contributions []Contribution `json:"contributions"`
}

// Aggregate merges every respondent's grid into one summary per coordinate,
// in coordinate order. Severity wins: unavailable > maybe > available. A cell
// a respondent never answered is simply excluded, never defaulted here.
// Contributions list every non-unavailable answer, sorted by respondent name
// so output is reproducible. The input maps are never mutated; callers
// re-invoke this on every edit or delete instead of patching a cached view.
func Aggregate(responses map[string]GridCells, coords []SlotCoordinate) []SlotSummary {
	names := make([]string, 0, len(responses))
	for name := range responses {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]SlotSummary, 0, len(coords))
	for _, coord := range coords {
		var hasUnavailable, hasMaybe bool
		answered := 0
		contributions := []Contribution{}

		for _, name := range names {
			value, ok := responses[name][coord]
			if !ok {
				continue
			}
			answered++
			switch value {
			case Unavailable:
				hasUnavailable = true
			case Maybe:
				hasMaybe = true
				contributions = append(contributions, Contribution{Respondent: name, Value: value})
			default:
				contributions = append(contributions, Contribution{Respondent: name, Value: value})
			}
		}

		merged := MergedAvailable
		switch {
		case answered == 0:
			merged = MergedNoData
		case hasUnavailable:
			merged = MergedNone
		case hasMaybe:
			merged = MergedMaybe
		}

		summaries = append(summaries, SlotSummary{
			Coordinate:    coord,
			Merged:        merged,
			Contributions: contributions,
		})
	}
	return summaries
}
