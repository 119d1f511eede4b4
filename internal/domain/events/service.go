package events

import (
	"context"
	"net/url"
	"slices"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new event. Attendees always start empty; a nil tag slice
// is stored as an empty array.
func (s *Service) Create(ctx context.Context, params InsertParams) (*Event, error) {
	if params.Tags == nil {
		params.Tags = []string{}
	}
	return s.repo.Insert(ctx, params)
}

// List returns matching events, newest first.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Event, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// AddAttendee appends attendee to the event's attendee list and reports
// whether the list changed. Adding an attendee that is already present is a
// no-op returning the unchanged event. The membership check happens in
// process memory, so concurrent RSVPs against the same event race
// last-write-wins at the store.
func (s *Service) AddAttendee(ctx context.Context, id string, attendee string) (*Event, bool, error) {
	attendee = strings.TrimSpace(attendee)
	if attendee == "" {
		return nil, false, ValidationError{Field: "attendee", Message: "attendee name or email is required"}
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if slices.Contains(event.Attendees, attendee) {
		return event, false, nil
	}

	updated, err := s.repo.UpdateAttendees(ctx, id, append(event.Attendees, attendee))
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// Delete removes the event and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id string) (*Event, error) {
	return s.repo.DeleteByID(ctx, id)
}

// ParseListFilters reads the optional search and tag query parameters.
// Absent or blank values mean no constraint; parsing never fails.
func ParseListFilters(values url.Values) ListFilters {
	return ListFilters{
		Search: strings.TrimSpace(values.Get("search")),
		Tag:    strings.TrimSpace(values.Get("tag")),
	}
}
