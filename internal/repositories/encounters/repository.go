// Package encounters stores in-progress encounter turn trackers
package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=encountersmock github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/encounters Repository

import (
	"context"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// Repository defines the storage interface for encounters
type Repository interface {
	// Save stores an encounter, replacing any with the same ID
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves an encounter by ID.
	// Returns errors.NotFound if it does not exist or has expired
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes an encounter.
	// Returns errors.NotFound if it does not exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the request for saving an encounter
type SaveInput struct {
	Encounter *wfrp.Encounter
}

// SaveOutput defines the response for saving an encounter
type SaveOutput struct{}

// GetInput defines the request for retrieving an encounter
type GetInput struct {
	EncounterID string
}

// GetOutput defines the response for retrieving an encounter
type GetOutput struct {
	Encounter *wfrp.Encounter
}

// DeleteInput defines the request for deleting an encounter
type DeleteInput struct {
	EncounterID string
}

// DeleteOutput defines the response for deleting an encounter
type DeleteOutput struct{}

const (
	errInputRequired       = "input is required"
	errEncounterRequired   = "encounter is required"
	errEncounterIDRequired = "encounter ID is required"
	errEncounterNotFound   = "encounter not found"
)

func validateSave(input *SaveInput) error {
	if input == nil {
		return errors.InvalidArgument(errInputRequired)
	}
	if input.Encounter == nil {
		return errors.InvalidArgument(errEncounterRequired)
	}
	if input.Encounter.ID == "" {
		return errors.InvalidArgument(errEncounterIDRequired)
	}
	return nil
}
