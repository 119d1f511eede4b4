package events

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

// Event is a community event document. Tags and Attendees always serialize
// as arrays, never null; the storage layer guarantees non-nil slices.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl"`
	Tags        []string  `json:"tags"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type InsertParams struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	ImageURL    string
	Tags        []string
}

// ListFilters narrows a listing. Zero values mean no constraint.
type ListFilters struct {
	Search string
	Tag    string
}

// Repository is the record-store surface the service depends on. The store
// stamps CreatedAt on insert and UpdatedAt on insert and update, and returns
// ErrNotFound for ids that match no record, including syntactically
// malformed ids.
type Repository interface {
	Insert(ctx context.Context, params InsertParams) (*Event, error)
	List(ctx context.Context, filters ListFilters) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	UpdateAttendees(ctx context.Context, id string, attendees []string) (*Event, error)
	DeleteByID(ctx context.Context, id string) (*Event, error)
}
