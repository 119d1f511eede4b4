package events

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/markusmobius/go-dateparser"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EventInput is the creation request body. Tags is kept raw so a non-array
// value coerces to an empty tag list instead of failing the decode.
type EventInput struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Date        string          `json:"date" validate:"required"`
	Location    string          `json:"location" validate:"required"`
	ImageURL    string          `json:"imageUrl"`
	Tags        json.RawMessage `json:"tags"`
}

// InsertParams validates the input and converts it to storage parameters.
// Attendees are not part of the input surface; events always start with none.
func (in EventInput) InsertParams() (InsertParams, error) {
	if err := validate.Struct(in); err != nil {
		return InsertParams{}, ValidationError{Message: "title, description, date and location are required"}
	}

	date, err := parseEventDate(in.Date)
	if err != nil {
		return InsertParams{}, err
	}

	return InsertParams{
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
		Tags:        in.parseTags(),
	}, nil
}

// parseTags decodes the raw tags value. Anything that is not a JSON array of
// strings coerces to an empty list rather than failing the request.
func (in EventInput) parseTags() []string {
	if len(in.Tags) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(in.Tags, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// parseEventDate accepts RFC3339 and plain dates first, then falls back to
// lenient human-format parsing ("January 5 2026", "05/01/2026", ...).
func parseEventDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	parsed, err := dateparser.Parse(nil, value)
	if err != nil {
		return time.Time{}, ValidationError{Field: "date", Message: "must be a recognizable date"}
	}
	return parsed.Time, nil
}
