package encounters

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/entities/wfrp"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Encounters do not survive a restart.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*wfrp.Encounter
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*wfrp.Encounter),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a copy of the encounter
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Encounter.ID] = clone(input.Encounter)

	return &SaveOutput{}, nil
}

// Get retrieves a copy of an encounter by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument(errEncounterIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, exists := r.store[input.EncounterID]
	if !exists {
		return nil, errors.NotFound(errEncounterNotFound)
	}

	return &GetOutput{Encounter: clone(enc)}, nil
}

// Delete removes an encounter
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.EncounterID == "" {
		return nil, errors.InvalidArgument(errEncounterIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.EncounterID]; !exists {
		return nil, errors.NotFound(errEncounterNotFound)
	}

	delete(r.store, input.EncounterID)

	return &DeleteOutput{}, nil
}

func clone(enc *wfrp.Encounter) *wfrp.Encounter {
	c := *enc
	c.Entries = slices.Clone(enc.Entries)
	return &c
}
