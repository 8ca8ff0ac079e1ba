package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry is one stored library record.
type Entry struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Author      string             `json:"author" bson:"author" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// Patch holds the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Author      *string `json:"author,omitempty" bson:"author,omitempty"`
	Description *string `json:"description,omitempty" bson:"description,omitempty"`
}

// UnmarshalJSON records which fields the body names. An explicit null counts
// as present and empty, so it fails validation instead of being skipped.
func (p *Patch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	author, err := presentString(raw, "author")
	if err != nil {
		return err
	}
	description, err := presentString(raw, "description")
	if err != nil {
		return err
	}
	*p = Patch{Author: author, Description: description}
	return nil
}

func presentString(raw map[string]json.RawMessage, key string) (*string, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	var s string
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return &s, nil
	}
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &s, nil
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Author == nil && p.Description == nil
}

// Apply writes the present fields onto e.
func (p Patch) Apply(e *Entry) {
	if p.Author != nil {
		e.Author = *p.Author
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
}
