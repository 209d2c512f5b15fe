package event

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// ============================
// 🔷 Event record
//
// Times are epoch milliseconds to match the documents the admin UI already
// produces. Date is UTC midnight of the booked day; the booked window lives in
// StartTimeMinutes/EndTimeMinutes.
type Event struct {
	ID               string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name             string `gorm:"type:varchar(255);not null" json:"name"`
	HeldBy           string `gorm:"type:varchar(255);not null" json:"heldBy"`
	Building         string `gorm:"type:varchar(8);not null;index" json:"building"`
	Floor            int    `gorm:"not null" json:"floor"`
	Room             string `gorm:"type:varchar(16);not null;index" json:"room"`
	Date             int64  `gorm:"not null;index" json:"date"`
	StartTimeMinutes int    `gorm:"not null" json:"startTimeMinutes"`
	EndTimeMinutes   int    `gorm:"not null" json:"endTimeMinutes"`
	CreatedAt        int64  `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt        int64  `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
	CreatedBy        string `gorm:"type:varchar(255)" json:"createdBy,omitempty"`
	Published        bool   `gorm:"not null" json:"published"`
	PosterURL        string `gorm:"type:text;not null" json:"posterUrl"`
}

// DateKey is the date index key of the event's day.
func (e *Event) DateKey() string {
	return timeutil.DateKeyFromMillis(e.Date)
}

// Window is the booked interval formatted as "HH:MM-HH:MM".
func (e *Event) Window() string {
	if !timeutil.ValidMinutes(e.StartTimeMinutes) || !timeutil.ValidMinutes(e.EndTimeMinutes) {
		return ""
	}
	return timeutil.TimeString(e.StartTimeMinutes) + "-" + timeutil.TimeString(e.EndTimeMinutes)
}

// ============================
// 🟡 Draft: body of POST /events
//
// Times may arrive as minute counts or "HH:MM" strings; minute counts win when
// both are present.
type Draft struct {
	Name             string            `json:"name"`
	HeldBy           string            `json:"heldBy"`
	Building         string            `json:"building"`
	Floor            FlexInt           `json:"floor"`
	Room             string            `json:"room"`
	Date             timeutil.DayValue `json:"date"`
	StartTimeMinutes *int              `json:"startTimeMinutes,omitempty"`
	EndTimeMinutes   *int              `json:"endTimeMinutes,omitempty"`
	StartTime        string            `json:"startTime,omitempty"`
	EndTime          string            `json:"endTime,omitempty"`
	Published        *bool             `json:"published,omitempty"`
	PosterURL        string            `json:"posterUrl,omitempty"`

	// Override persists the event even when it overlaps an existing booking.
	Override bool `json:"override,omitempty"`
}

// ============================
// 🟠 Patch: body of PUT /events/:id, nil fields are left unchanged
type Patch struct {
	Name             *string            `json:"name,omitempty"`
	HeldBy           *string            `json:"heldBy,omitempty"`
	Building         *string            `json:"building,omitempty"`
	Floor            *FlexInt           `json:"floor,omitempty"`
	Room             *string            `json:"room,omitempty"`
	Date             *timeutil.DayValue `json:"date,omitempty"`
	StartTimeMinutes *int               `json:"startTimeMinutes,omitempty"`
	EndTimeMinutes   *int               `json:"endTimeMinutes,omitempty"`
	StartTime        *string            `json:"startTime,omitempty"`
	EndTime          *string            `json:"endTime,omitempty"`
	Published        *bool              `json:"published,omitempty"`
	PosterURL        *string            `json:"posterUrl,omitempty"`

	Override bool `json:"override,omitempty"`
}

// Candidate is a booking to test against existing events.
type Candidate struct {
	Date         timeutil.DayValue `json:"date" swaggertype:"integer"`
	Room         string            `json:"room"`
	StartMinutes int               `json:"startMinutes"`
	EndMinutes   int               `json:"endMinutes"`
}

// Actor identifies the admin performing a mutation, for audit records.
type Actor struct {
	AdminID *uint
	Email   string
	IP      string
}

// FlexInt accepts both 5 and "5"; the admin form posts select values as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}
