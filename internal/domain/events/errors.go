package events

import "fmt"

// ValidationError reports missing or unusable request input. Handlers map it
// to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
