package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatherhub/server/internal/domain/events"
	"github.com/stretchr/testify/require"
)

func TestEventsHandlerCalendar(t *testing.T) {
	date := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	repo := stubEventsRepo{
		getFn: func(id string) (*events.Event, error) {
			return &events.Event{
				ID:          testULID,
				Title:       "Jazz Night",
				Description: "Live jazz downtown",
				Location:    "Blue Note",
				Date:        date,
				Tags:        []string{"music", "jazz"},
				Attendees:   []string{},
				UpdatedAt:   date,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/events/"+testULID+"/calendar.ics", nil)
	req.SetPathValue("id", testULID)
	res := httptest.NewRecorder()

	newHandler(repo).Calendar(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "text/calendar; charset=utf-8", res.Header().Get("Content-Type"))
	require.Contains(t, res.Header().Get("Content-Disposition"), testULID)

	body := res.Body.String()
	require.Contains(t, body, "BEGIN:VCALENDAR")
	require.Contains(t, body, "BEGIN:VEVENT")
	require.Contains(t, body, "SUMMARY:Jazz Night")
	require.Contains(t, body, "LOCATION:Blue Note")
	require.Contains(t, body, "UID:"+testULID)
	require.Contains(t, body, "END:VCALENDAR")
}

func TestEventsHandlerCalendarNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/events/"+testULID+"/calendar.ics", nil)
	req.SetPathValue("id", testULID)
	res := httptest.NewRecorder()

	newHandler(stubEventsRepo{}).Calendar(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}
