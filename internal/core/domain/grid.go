package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Availability is the tri-state answer a respondent gives for one slot.
type Availability string

const (
	Available   Availability = "available"
	Maybe       Availability = "maybe"
	Unavailable Availability = "unavailable"
)

// Cycle advances the value the way a tap on a grid cell does:
// available -> maybe -> unavailable -> available.
func (a Availability) Cycle() Availability {
	switch a {
	case Available:
		return Maybe
	case Maybe:
		return Unavailable
	default:
		return Available
	}
}

func (a Availability) Valid() bool {
	switch a {
	case Available, Maybe, Unavailable:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used everywhere a date keys a slot.
const DateLayout = "2006-01-02"

// SlotCoordinate is one cell of a poll's grid: a calendar date paired with a
// time-of-day label from the poll's day partition.
type SlotCoordinate struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// DefaultDayPartition returns the 12 two-hour labels that partition a day,
// "00:00~" through "22:00~", in display order.
func DefaultDayPartition() []string {
	labels := make([]string, 0, 12)
	for h := 0; h < 24; h += 2 {
		labels = append(labels, fmt.Sprintf("%02d:00~", h))
	}
	return labels
}

// DefaultNightLabels returns the labels pre-filled as unavailable when a
// respondent opens a blank grid.
func DefaultNightLabels() []string {
	return []string{"22:00~", "00:00~", "02:00~", "04:00~", "06:00~"}
}

// GenerateCoordinates enumerates every (date, label) cell for the inclusive
// date range, date-major in calendar order, labels in partition order. Dates
// advance one calendar day at a time so the sequence stays correct across
// daylight-savings transitions. The same inputs always produce the same
// sequence; every table and grid view renders in this order.
func GenerateCoordinates(startDate, endDate string, partition []string) ([]SlotCoordinate, error) {
	start, err := time.ParseInLocation(DateLayout, startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(DateLayout, endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	var coords []SlotCoordinate
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(DateLayout)
		for _, label := range partition {
			coords = append(coords, SlotCoordinate{Date: date, Label: label})
		}
	}
	return coords, nil
}

// GridCells maps every slot coordinate of a poll to a tri-state value.
// It marshals as {"2025-12-01": {"10:00~": "available", ...}, ...} so the
// same shape serves the HTTP API and the JSONB column.
type GridCells map[SlotCoordinate]Availability

func (c GridCells) MarshalJSON() ([]byte, error) {
	nested := make(map[string]map[string]Availability)
	for coord, value := range c {
		if nested[coord.Date] == nil {
			nested[coord.Date] = make(map[string]Availability)
		}
		nested[coord.Date][coord.Label] = value
	}
	return json.Marshal(nested)
}

func (c *GridCells) UnmarshalJSON(data []byte) error {
	var nested map[string]map[string]Availability
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	cells := make(GridCells)
	for date, labels := range nested {
		for label, value := range labels {
			cells[SlotCoordinate{Date: date, Label: label}] = value
		}
	}
	*c = cells
	return nil
}

// DefaultGrid pre-fills a full grid over the given coordinates: cells whose
// label is in nightLabels start unavailable, everything else available. The
// respondent can cycle any cell before submitting.
func DefaultGrid(coords []SlotCoordinate, nightLabels []string) GridCells {
	night := make(map[string]struct{}, len(nightLabels))
	for _, label := range nightLabels {
		night[label] = struct{}{}
	}

	cells := make(GridCells, len(coords))
	for _, coord := range coords {
		if _, ok := night[coord.Label]; ok {
			cells[coord] = Unavailable
		} else {
			cells[coord] = Available
		}
	}
	return cells
}

// ResponseGrid is one respondent's complete answer for one poll. Respondents
// are identified by a freely typed display name; a re-submission under the
// same name replaces the previous grid entirely.
type ResponseGrid struct {
	PollID      uuid.UUID `json:"poll_id"`
	Respondent  string    `json:"respondent"`
	Cells       GridCells `json:"cells"`
	SubmittedAt time.Time `json:"submitted_at"`
}
