package library

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrValidation  = errors.New("author and description are required")
	ErrMalformed   = errors.New("malformed request body")
	ErrInvalidID   = errors.New("invalid id")
	ErrNotFound    = errors.New("entry not found")
	ErrConflict    = errors.New("duplicate entry")
	ErrUnavailable = errors.New("library store unavailable")
)

var validate = validator.New()

// ParseID converts a hex identifier into an ObjectID, rejecting anything the
// store would not accept.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// Validate checks the required fields of an entry.
func Validate(e *Entry) error {
	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s is required", ErrValidation, jsonName(verrs[0].Field()))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// ValidatePatch re-runs presence validation on the fields a patch writes.
func ValidatePatch(p Patch) error {
	if p.Author != nil && *p.Author == "" {
		return fmt.Errorf("%w: author is required", ErrValidation)
	}
	if p.Description != nil && *p.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

func jsonName(field string) string {
	switch field {
	case "Author":
		return "author"
	case "Description":
		return "description"
	}
	return field
}
