// Package collection implements CRUD over a record collection held in one document.
//
// Every operation loads the whole document, works on the in-memory list and, for
// mutations, saves the whole list back. Operations on the same collection are not
// serialized: two concurrent mutations can each load the same list and the later
// save wins.
package collection

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/pkg/idgen"
	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document"
)

// Service defines the collection operations
type Service[T Record] interface {
	// List returns every record in storage order.
	// Returns errors.Internal naming the index of a stored record that does not decode
	List(ctx context.Context, input *ListInput) (*ListOutput[T], error)

	// Get returns the first record with the given ID.
	// Returns errors.NotFound if no record has it
	Get(ctx context.Context, input *GetInput) (*GetOutput[T], error)

	// Create appends a record, generating an ID when it has none.
	// Returns errors.Unprocessable if the record fails validation
	Create(ctx context.Context, input *CreateInput[T]) (*CreateOutput[T], error)

	// Update replaces the first record with the given ID, keeping its position.
	// Returns errors.NotFound without writing anything if no record has it
	Update(ctx context.Context, input *UpdateInput[T]) (*UpdateOutput[T], error)

	// Delete removes every record with the given ID. An unknown ID is not an error.
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// Seed writes the default records if the document does not exist yet
	Seed(ctx context.Context, input *SeedInput) (*SeedOutput, error)
}

// Config holds the dependencies for a collection orchestrator
type Config[T Record] struct {
	Repository document.Repository

	// Document names the stored collection, e.g. "weapons"
	Document string

	// Defaults returns the records a missing or unreadable document is replaced with
	Defaults func() []document.Record

	// NewRecord returns an empty record to decode into
	NewRecord func() T

	IDGenerator idgen.Generator
	Logger      *zap.Logger

	// NotFoundMessage is reported when Get or Update miss, e.g. "Enemy not found"
	NotFoundMessage string
}

// Validate ensures all required dependencies are provided
func (c *Config[T]) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Document == "" {
		vb.RequiredField("Document")
	}
	if c.Defaults == nil {
		vb.RequiredField("Defaults")
	}
	if c.NewRecord == nil {
		vb.RequiredField("NewRecord")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator[T Record] struct {
	repo            document.Repository
	document        string
	defaults        func() []document.Record
	newRecord       func() T
	idGen           idgen.Generator
	logger          *zap.Logger
	notFoundMessage string
}

// NewOrchestrator creates a new collection orchestrator with the provided dependencies
func NewOrchestrator[T Record](cfg *Config[T]) (Service[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	notFound := cfg.NotFoundMessage
	if notFound == "" {
		notFound = "record not found"
	}

	return &orchestrator[T]{
		repo:            cfg.Repository,
		document:        cfg.Document,
		defaults:        cfg.Defaults,
		newRecord:       cfg.NewRecord,
		idGen:           cfg.IDGenerator,
		logger:          logger.With(zap.String("collection", cfg.Document)),
		notFoundMessage: notFound,
	}, nil
}

func (o *orchestrator[T]) List(ctx context.Context, _ *ListInput) (*ListOutput[T], error) {
	raw, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(raw))
	for i, r := range raw {
		record, err := o.decode(i, r)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return &ListOutput[T]{Records: records}, nil
}

func (o *orchestrator[T]) Get(ctx context.Context, input *GetInput) (*GetOutput[T], error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("id is required")
	}

	raw, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(raw, input.ID)
	if i < 0 {
		return nil, o.notFound(input.ID)
	}

	record, err := o.decode(i, raw[i])
	if err != nil {
		return nil, err
	}

	return &GetOutput[T]{Record: record}, nil
}

func (o *orchestrator[T]) Create(ctx context.Context, input *CreateInput[T]) (*CreateOutput[T], error) {
	if input == nil || isNil(input.Record) {
		return nil, errors.InvalidArgument("record is required")
	}

	record := input.Record
	if err := record.Validate(); err != nil {
		return nil, err
	}

	raw, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	if record.GetID() == "" {
		record.SetID(o.idGen.Generate())
	}
	record.Initialize()

	encoded, err := document.ToRecord(record)
	if err != nil {
		return nil, err
	}

	if err := o.save(ctx, append(raw, encoded)); err != nil {
		return nil, err
	}

	o.logger.Info("record created", zap.String("id", record.GetID()))

	return &CreateOutput[T]{Record: record}, nil
}

func (o *orchestrator[T]) Update(ctx context.Context, input *UpdateInput[T]) (*UpdateOutput[T], error) {
	if input == nil || isNil(input.Record) {
		return nil, errors.InvalidArgument("record is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("id is required")
	}

	record := input.Record
	if err := record.Validate(); err != nil {
		return nil, err
	}

	raw, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(raw, input.ID)
	if i < 0 {
		return nil, o.notFound(input.ID)
	}

	record.SetID(input.ID)

	encoded, err := document.ToRecord(record)
	if err != nil {
		return nil, err
	}
	raw[i] = encoded

	if err := o.save(ctx, raw); err != nil {
		return nil, err
	}

	o.logger.Info("record updated", zap.String("id", input.ID))

	return &UpdateOutput[T]{Record: record}, nil
}

func (o *orchestrator[T]) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("id is required")
	}

	raw, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := slices.DeleteFunc(slices.Clone(raw), func(r document.Record) bool {
		return r.ID() == input.ID
	})

	if err := o.save(ctx, kept); err != nil {
		return nil, err
	}

	deleted := len(kept) < len(raw)
	o.logger.Info("record deleted", zap.String("id", input.ID), zap.Bool("matched", deleted))

	return &DeleteOutput{Deleted: deleted}, nil
}

func (o *orchestrator[T]) Seed(ctx context.Context, _ *SeedInput) (*SeedOutput, error) {
	out, err := o.repo.Load(ctx, document.LoadInput{
		Document: o.document,
		Defaults: o.defaults(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to seed %s", o.document)
	}

	return &SeedOutput{Seeded: out.Seeded, Count: len(out.Records)}, nil
}

func (o *orchestrator[T]) load(ctx context.Context) ([]document.Record, error) {
	out, err := o.repo.Load(ctx, document.LoadInput{
		Document: o.document,
		Defaults: o.defaults(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", o.document)
	}
	return out.Records, nil
}

func (o *orchestrator[T]) save(ctx context.Context, records []document.Record) error {
	_, err := o.repo.Save(ctx, document.SaveInput{
		Document: o.document,
		Records:  records,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", o.document)
	}
	return nil
}

func (o *orchestrator[T]) decode(index int, raw document.Record) (T, error) {
	record := o.newRecord()
	if err := document.FromRecord(raw, record); err != nil {
		var zero T
		return zero, errors.WrapWithCodef(err, errors.CodeInternal, "stored %s record %d is invalid", o.document, index).
			WithMeta("index", index)
	}
	return record, nil
}

func (o *orchestrator[T]) notFound(id string) error {
	return errors.NotFound(o.notFoundMessage).WithMeta("id", id)
}

func indexOf(records []document.Record, id string) int {
	return slices.IndexFunc(records, func(r document.Record) bool {
		return r.ID() == id
	})
}

func isNil[T Record](record T) bool {
	var zero T
	return any(record) == any(zero)
}
