package event

import (
	"errors"
	"strings"

	"github.com/uph-campus/campus-events-backend/internal/campus"
	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// resolveMinutes picks the minute count, or parses the "HH:MM" form.
// A malformed string is reported on the field, never defaulted to midnight.
func resolveMinutes(verr *ValidationError, field string, minutes *int, clock string) (int, bool) {
	if minutes != nil {
		return *minutes, true
	}
	if clock == "" {
		return 0, false
	}
	m, err := timeutil.MinutesOfDay(clock)
	if err != nil {
		verr.add(field, "%v", err)
		return 0, false
	}
	return m, true
}

// fromDraft builds an unsaved event from a draft. The result still needs
// validateEvent.
func fromDraft(d Draft, verr *ValidationError) *Event {
	e := &Event{
		Name:      strings.TrimSpace(d.Name),
		HeldBy:    strings.TrimSpace(d.HeldBy),
		Building:  strings.ToUpper(strings.TrimSpace(d.Building)),
		Floor:     int(d.Floor),
		Room:      strings.ToUpper(strings.TrimSpace(d.Room)),
		Published: true,
		PosterURL: strings.TrimSpace(d.PosterURL),
	}
	if d.Date.IsZero() {
		verr.add("date", "is required")
	} else {
		e.Date = d.Date.Millis()
	}
	if d.Published != nil {
		e.Published = *d.Published
	}

	start, okStart := resolveMinutes(verr, "startTimeMinutes", d.StartTimeMinutes, d.StartTime)
	end, okEnd := resolveMinutes(verr, "endTimeMinutes", d.EndTimeMinutes, d.EndTime)
	if !okStart {
		start = -1
	}
	if !okEnd {
		end = -1
	}
	e.StartTimeMinutes, e.EndTimeMinutes = start, end
	return e
}

// applyPatch merges non-nil patch fields into a copy of e.
func applyPatch(e Event, p Patch, verr *ValidationError) *Event {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.HeldBy != nil {
		e.HeldBy = strings.TrimSpace(*p.HeldBy)
	}
	if p.Building != nil {
		e.Building = strings.ToUpper(strings.TrimSpace(*p.Building))
	}
	if p.Floor != nil {
		e.Floor = int(*p.Floor)
	}
	if p.Room != nil {
		e.Room = strings.ToUpper(strings.TrimSpace(*p.Room))
	}
	if p.Date != nil {
		if p.Date.IsZero() {
			verr.add("date", "is required")
		} else {
			e.Date = p.Date.Millis()
		}
	}
	if p.Published != nil {
		e.Published = *p.Published
	}
	if p.PosterURL != nil {
		e.PosterURL = strings.TrimSpace(*p.PosterURL)
	}

	startClock, endClock := "", ""
	if p.StartTime != nil {
		startClock = *p.StartTime
	}
	if p.EndTime != nil {
		endClock = *p.EndTime
	}
	if m, ok := resolveMinutes(verr, "startTimeMinutes", p.StartTimeMinutes, startClock); ok {
		e.StartTimeMinutes = m
	}
	if m, ok := resolveMinutes(verr, "endTimeMinutes", p.EndTimeMinutes, endClock); ok {
		e.EndTimeMinutes = m
	}
	return &e
}

// validateEvent checks required fields, the booking window and the
// building/floor/room triple.
func validateEvent(e *Event, catalog *campus.Catalog, verr *ValidationError) {
	if e.Name == "" {
		verr.add("name", "is required")
	}
	if e.HeldBy == "" {
		verr.add("heldBy", "is required")
	}
	startOK := timeutil.ValidMinutes(e.StartTimeMinutes)
	endOK := timeutil.ValidMinutes(e.EndTimeMinutes)
	if !startOK && !verr.has("startTimeMinutes") {
		verr.add("startTimeMinutes", "is required and must be within [0,%d)", timeutil.MinutesPerDay)
	}
	if !endOK && !verr.has("endTimeMinutes") {
		verr.add("endTimeMinutes", "is required and must be within [0,%d)", timeutil.MinutesPerDay)
	}
	if startOK && endOK && e.StartTimeMinutes >= e.EndTimeMinutes {
		verr.add("endTimeMinutes", "must be after the start time")
	}

	switch {
	case e.Building == "":
		verr.add("building", "is required")
	case e.Room == "":
		verr.add("room", "is required")
	case catalog != nil:
		if err := catalog.Validate(e.Building, e.Floor, e.Room); err != nil {
			verr.add(catalogField(err), "%v", err)
		}
	}
}

func catalogField(err error) string {
	switch {
	case errors.Is(err, campus.ErrUnknownBuilding):
		return "building"
	case errors.Is(err, campus.ErrUnknownFloor):
		return "floor"
	default:
		return "room"
	}
}

func (e *ValidationError) has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
