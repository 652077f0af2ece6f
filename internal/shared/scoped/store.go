// Package scoped provides the owner-scoped persistence contract shared by every tracked entity
// type, together with its GORM implementation and payload validation.
package scoped

import "context"

// Store persists one homogeneous collection of records, always filtered by the owning user.
//
// M is the stored record, C the creation payload and P the partial-update payload. Neither
// payload type carries an owner: the owner is always passed out-of-band from the
// authenticated request.
type Store[M any, C any, P any] interface {
	// List returns every record owned by ownerID. It returns an empty slice when there are none.
	List(ctx context.Context, ownerID uint) ([]M, error)

	// Create validates the payload and stores a new record owned by ownerID.
	Create(ctx context.Context, ownerID uint, payload C) (M, error)

	// Update applies the supplied patch fields to the record at id.
	// It returns ErrNotFound when no record with that id is owned by ownerID.
	Update(ctx context.Context, id, ownerID uint, patch P) (M, error)

	// Delete removes the record at id if ownerID owns it. Deleting a missing or
	// foreign record is not an error.
	Delete(ctx context.Context, id, ownerID uint) error
}

// Creator turns a validated creation payload into the row to insert.
// Defaults for optional fields are applied here.
type Creator[M any] interface {
	NewRecord(ownerID uint) M
}

// Patcher reports the columns assigned by a validated partial update, keyed by column name.
// Fields absent from the request must not appear in the map.
type Patcher interface {
	Changes() map[string]any
}
