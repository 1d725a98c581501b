package entity

import (
	"errors"
	"strings"
)

// ErrInvalidDraft is returned when a draft fails validation.
var ErrInvalidDraft = errors.New("invalid entry draft")

// Validation messages shown to the operator.
const (
	DraftMessageInputRequired      = "Input required"
	DraftMessageNegativeExpiration = "Expiration is negative"
)

// DraftError describes why a draft was rejected.
type DraftError struct {
	Message string
}

func (e *DraftError) Error() string {
	return e.Message
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidDraft).
func (e *DraftError) Unwrap() error {
	return ErrInvalidDraft
}

// EntryDraft is unsubmitted operator input for a new cache entry.
type EntryDraft struct {
	Key   string
	Value string
	// Expiration in seconds; nil means the field was left empty.
	Expiration *int64
}

// NewEntryDraft builds a draft with an expiration set.
func NewEntryDraft(key, value string, expirationSeconds int64) EntryDraft {
	return EntryDraft{Key: key, Value: value, Expiration: &expirationSeconds}
}

// Validate checks key and value are non-blank and expiration is present and non-negative.
func (d EntryDraft) Validate() error {
	if strings.TrimSpace(d.Key) == "" || strings.TrimSpace(d.Value) == "" || d.Expiration == nil {
		return &DraftError{Message: DraftMessageInputRequired}
	}
	if *d.Expiration < 0 {
		return &DraftError{Message: DraftMessageNegativeExpiration}
	}
	return nil
}

// IsZero reports whether the draft holds no input at all.
func (d EntryDraft) IsZero() bool {
	return d.Key == "" && d.Value == "" && d.Expiration == nil
}
