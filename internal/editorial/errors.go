package editorial

import (
	"errors"
	"fmt"
)

var (
	// ErrIdeaNotFound is returned when an idea id does not exist.
	ErrIdeaNotFound = errors.New("idea not found")

	// ErrIdeaNotApproved is returned when a draft is requested for an idea
	// that is not in the APPROVED state.
	ErrIdeaNotApproved = errors.New("idea is not approved")

	// ErrNoNiches is returned when editorial settings have no target niches
	// configured, so scouting cannot produce relevant ideas.
	ErrNoNiches = errors.New("no target niches configured")

	// ErrSettingsNotConfigured is returned when the settings row is missing.
	ErrSettingsNotConfigured = errors.New("editorial settings not configured")
)

// ValidationError marks a request whose payload failed validation.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}
