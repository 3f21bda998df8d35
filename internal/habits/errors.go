// ABOUTME: Sentinel errors returned by the habit store.
// ABOUTME: Callers match them with errors.Is.
package habits

import "errors"

var (
	// ErrQuotaExceeded means the current plan allows no more habits.
	ErrQuotaExceeded = errors.New("habit limit reached for current plan")
	// ErrNotFound means no habit has the given id.
	ErrNotFound = errors.New("habit not found")
	// ErrAmbiguousID means an id prefix matched more than one habit.
	ErrAmbiguousID = errors.New("ambiguous habit id prefix")
	// ErrPersistence wraps failures of the key-value backend.
	ErrPersistence = errors.New("persistence failure")
	// ErrFeatureLocked means the operation needs a premium feature.
	ErrFeatureLocked = errors.New("feature requires premium plan")
	// ErrInvalidDateKey means a completion date is not a YYYY-MM-DD calendar date.
	ErrInvalidDateKey = errors.New("invalid date key")
)
