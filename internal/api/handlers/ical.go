package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/gatherhub/server/internal/api/problem"
	"github.com/gatherhub/server/internal/domain/events"
)

// Calendar serves a single event as an iCalendar document so attendees can
// import it into their calendar client.
func (h *EventsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	item, err := h.Service.GetByID(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(eventCalendar(item)); err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="event-`+item.ID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func eventCalendar(item *events.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//gatherhub//server//EN")

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, item.ID)
	ve.Props.SetText(ical.PropSummary, item.Title)
	ve.Props.SetText(ical.PropDescription, item.Description)
	ve.Props.SetText(ical.PropLocation, item.Location)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, item.UpdatedAt.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, item.Date.UTC())
	if len(item.Tags) > 0 {
		ve.Props.SetText(ical.PropCategories, strings.Join(item.Tags, ","))
	}
	cal.Children = append(cal.Children, ve)
	return cal
}
