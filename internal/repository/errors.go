package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the repository.
// This abstracts away the underlying storage implementation from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrNotInitialized is returned when the counter record is missing. Callers
// must surface this rather than fall back to a default id.
var ErrNotInitialized = errors.New("counter record not initialized")

// ErrAlreadyPurchased is returned when marking a ticket bought that has
// already been settled. It is the settlement idempotency guard.
var ErrAlreadyPurchased = errors.New("ticket already purchased")

// ErrAlreadyEnded is returned when closing or appending to an event whose
// ended flag has already transitioned to true.
var ErrAlreadyEnded = errors.New("event already ended")

// ErrConcurrentModification is returned when a guarded write lost its race
// and the caller should retry the whole read-modify-write.
var ErrConcurrentModification = errors.New("concurrent modification")
