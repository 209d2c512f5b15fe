package reports

import (
	"strconv"

	"github.com/uph-campus/campus-events-backend/internal/event"
	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// Supported formats
const (
	FormatExcel = "xlsx"
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
)

// EventReportRow is one line of the events export.
type EventReportRow struct {
	Name      string
	HeldBy    string
	Building  string
	Floor     string
	Room      string
	Date      string
	Window    string
	Status    string
	Published string
	CreatedBy string
}

var eventHeaders = []string{"Name", "Held By", "Building", "Floor", "Room", "Date", "Time", "Status", "Published", "Created By"}

func (r EventReportRow) cells() []string {
	return []string{r.Name, r.HeldBy, r.Building, r.Floor, r.Room, r.Date, r.Window, r.Status, r.Published, r.CreatedBy}
}

// RowsFromViews flattens classified events into export rows.
func RowsFromViews(views []event.View) []EventReportRow {
	rows := make([]EventReportRow, 0, len(views))
	for _, v := range views {
		published := "No"
		if v.Published {
			published = "Yes"
		}
		rows = append(rows, EventReportRow{
			Name:      v.Name,
			HeldBy:    v.HeldBy,
			Building:  v.Building,
			Floor:     strconv.Itoa(v.Floor),
			Room:      v.Room,
			Date:      timeutil.ISODate(v.Date),
			Window:    v.Window(),
			Status:    string(v.Status),
			Published: published,
			CreatedBy: v.CreatedBy,
		})
	}
	return rows
}
