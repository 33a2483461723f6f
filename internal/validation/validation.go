package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID is returned for any id path or body parameter that does
// not parse as a UUID. Handlers map it to 400.
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// ValidateUUID checks that id is a well-formed UUID.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
