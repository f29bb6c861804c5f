package document

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/errors"
)

const indent = "  "

// ErrNotArray reports a document that is valid JSON but not a top-level array
var ErrNotArray = stderrors.New("document is not a JSON array")

// Record is one element of a collection document.
// Elements are normally objects, but any JSON value is kept as loaded so a
// save never drops an element the service cannot interpret.
// Numbers are held as json.Number so a load/save cycle does not alter them.
type Record struct {
	value any
}

// ID returns the record's "id" field, or "" when the record is not an object
// or the field is absent or not a string
func (r Record) ID() string {
	id, _ := r.Field("id").(string)
	return id
}

// Field returns a top-level field of an object record, or nil
func (r Record) Field(name string) any {
	fields, ok := r.value.(map[string]any)
	if !ok {
		return nil
	}
	return fields[name]
}

// MarshalJSON renders the record exactly as it was loaded
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// ParseRecords decodes a document holding a JSON array.
// Bytes that are not a single JSON value return a decode error; any other
// JSON value returns an error wrapping ErrNotArray.
func ParseRecords(data []byte) ([]Record, error) {
	value, err := decodeValue(data)
	if err != nil {
		return nil, err
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: found %s", ErrNotArray, kindOf(value))
	}

	records := make([]Record, len(items))
	for i, item := range items {
		records[i] = Record{value: item}
	}
	return records, nil
}

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// MustParseRecords is ParseRecords for compiled-in documents; it panics on error
func MustParseRecords(data []byte) []Record {
	records, err := ParseRecords(data)
	if err != nil {
		panic(fmt.Sprintf("document: invalid built-in records: %v", err))
	}
	return records
}

// EncodeRecords renders records as an indented JSON array
func EncodeRecords(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.MarshalIndent(records, "", indent)
}

// ToRecord converts a typed value into a Record through its JSON form
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Record{}, errors.Wrap(err, "failed to marshal record")
	}

	value, err := decodeValue(data)
	if err != nil {
		return Record{}, errors.Wrap(err, "failed to convert record")
	}
	return Record{value: value}, nil
}

// FromRecord decodes a Record into a typed value through its JSON form
func FromRecord(record Record, v any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal record")
	}
	return json.Unmarshal(data, v)
}

func validateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.InvalidArgument("document name is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.InvalidArgumentf("invalid document name %q", name)
	}
	return nil
}
