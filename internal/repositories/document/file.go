package document

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

const (
	fileExtension = ".json"
	dirPerm       = 0o755
	filePerm      = 0o644
)

// FileConfig contains configuration for the file document repository
type FileConfig struct {
	// Dir holds one <document>.json file per collection. It is created if absent.
	Dir    string
	Logger *zap.Logger
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Dir == "" {
		return errors.InvalidArgument("data directory is required")
	}
	return nil
}

type fileRepository struct {
	dir    string
	logger *zap.Logger
}

// NewFile creates a document repository rooted at cfg.Dir
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Dir, dirPerm); err != nil {
		return nil, errors.Wrapf(err, "failed to create data directory %s", cfg.Dir)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &fileRepository{
		dir:    cfg.Dir,
		logger: logger.With(zap.String("backend", "file"), zap.String("dir", cfg.Dir)),
	}, nil
}

var _ Repository = (*fileRepository)(nil)

func (r *fileRepository) Load(_ context.Context, input LoadInput) (*LoadOutput, error) {
	if err := validateDocumentName(input.Document); err != nil {
		return nil, err
	}

	path := r.path(input.Document)
	data, err := os.ReadFile(path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to read document %s", input.Document).
				WithMeta("document", input.Document)
		}

		if _, err := r.write(input.Document, input.Defaults); err != nil {
			return nil, err
		}
		r.logger.Info("seeded document with defaults",
			zap.String("document", input.Document),
			zap.Int("records", len(input.Defaults)))

		return &LoadOutput{Records: input.Defaults, Seeded: true}, nil
	}

	records, err := ParseRecords(data)
	if errors.Is(err, ErrNotArray) {
		// Valid JSON of the wrong shape is reported, never replaced.
		return nil, errors.Wrapf(err, "document %s is not a collection", input.Document).
			WithMeta("document", input.Document)
	}
	if err != nil {
		// The unreadable document stays on disk; callers only ever see the defaults.
		r.logger.Debug("document unreadable, using defaults",
			zap.String("document", input.Document),
			zap.Error(err))

		return &LoadOutput{Records: input.Defaults, Recovered: true}, nil
	}

	return &LoadOutput{Records: records}, nil
}

func (r *fileRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateDocumentName(input.Document); err != nil {
		return nil, err
	}

	n, err := r.write(input.Document, input.Records)
	if err != nil {
		return nil, err
	}

	return &SaveOutput{Bytes: n}, nil
}

func (r *fileRepository) write(document string, records []Record) (int, error) {
	data, err := EncodeRecords(records)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to encode document %s", document)
	}

	if err := os.WriteFile(r.path(document), data, filePerm); err != nil {
		return 0, errors.Wrapf(err, "failed to write document %s", document).
			WithMeta("document", document)
	}
	return len(data), nil
}

func (r *fileRepository) path(document string) string {
	return filepath.Join(r.dir, document+fileExtension)
}
