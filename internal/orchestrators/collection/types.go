package collection

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Record is a typed collection entry. Implementations are pointer types.
type Record interface {
	core.Entity

	// SetID replaces the record's identifier
	SetID(id string)

	// Initialize applies construction-time derivations. Only called by Create.
	Initialize()

	// Validate rejects records that do not satisfy the domain model
	Validate() error
}

// ListInput defines the request for listing a collection
type ListInput struct{}

// ListOutput defines the response for listing a collection
type ListOutput[T Record] struct {
	Records []T
}

// GetInput defines the request for fetching one record
type GetInput struct {
	ID string
}

// GetOutput defines the response for fetching one record
type GetOutput[T Record] struct {
	Record T
}

// CreateInput defines the request for creating a record
type CreateInput[T Record] struct {
	Record T
}

// CreateOutput defines the response for creating a record
type CreateOutput[T Record] struct {
	Record T
}

// UpdateInput defines the request for replacing a record
type UpdateInput[T Record] struct {
	// ID is authoritative; any identifier on Record is overwritten
	ID     string
	Record T
}

// UpdateOutput defines the response for replacing a record
type UpdateOutput[T Record] struct {
	Record T
}

// DeleteInput defines the request for deleting a record
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting a record
type DeleteOutput struct {
	// Deleted is false when no record carried the ID; the delete still succeeds
	Deleted bool
}

// SeedInput defines the request for seeding a collection
type SeedInput struct{}

// SeedOutput defines the response for seeding a collection
type SeedOutput struct {
	// Seeded is true when the document was absent and has been written from the defaults
	Seeded bool
	Count  int
}
