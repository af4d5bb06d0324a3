package domain

import "errors"

var (
	MessageSuccessGetCalendar = "calendar events retrieved successfully"
	MessageSuccessExportPDF   = "meal plan exported successfully"

	MessageFailedGetCalendar = "failed to retrieve calendar events"
	MessageFailedExportPDF   = "failed to export meal plan"

	ErrPDFRenderFailed = errors.New("pdf rendering failed")
)

type (
	// CalendarEvent matches the event object the calendar frontend consumes.
	CalendarEvent struct {
		Title    string `json:"title"`
		Start    string `json:"start"`
		URL      string `json:"url"`
		Editable bool   `json:"editable"`
		Color    string `json:"color"`
	}
)
