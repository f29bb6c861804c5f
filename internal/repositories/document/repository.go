// Package document provides durable storage of record collections as JSON documents.
//
// Each collection lives in one document holding a top-level array of loosely typed
// records. Every Load reads the whole document and every Save rewrites it; there is
// no cache and no locking, so concurrent read-modify-write cycles on the same
// document can lose updates.
package document

//go:generate mockgen -destination=mock/mock_repository.go -package=documentmock github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document Repository

import (
	"context"
)

// Repository defines the interface for collection document storage
type Repository interface {
	// Load returns the records of a document.
	// A missing document is created holding Defaults, and Defaults is returned.
	// A document that is not valid JSON yields Defaults and is left untouched on disk.
	// Elements of an array document are returned as stored, whatever their shape.
	// Returns errors.InvalidArgument for an invalid document name
	// Returns errors.Internal for storage failures and for valid JSON that is not an array
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save replaces the document with Records.
	// The write is not atomic.
	// Returns errors.InvalidArgument for an invalid document name
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// LoadInput defines the input for loading a document
type LoadInput struct {
	Document string
	Defaults []Record
}

// LoadOutput defines the output for loading a document
type LoadOutput struct {
	Records []Record

	// Seeded is true when the document was absent and has been created from the defaults
	Seeded bool

	// Recovered is true when the document was not valid JSON and the defaults were returned instead
	Recovered bool
}

// SaveInput defines the input for saving a document
type SaveInput struct {
	Document string
	Records  []Record
}

// SaveOutput defines the output for saving a document
type SaveOutput struct {
	Bytes int
}
