// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document"
	documentmock "github.com/KirkDiggler/wfrp-encounter-api/internal/repositories/document/mock"
)

// ExpectDocumentLoad expects one load of name and returns records as if the document existed
func ExpectDocumentLoad(
	ctx context.Context, mockRepo *documentmock.MockRepository,
	name string, records []document.Record,
) *gomock.Call {
	return mockRepo.EXPECT().
		Load(ctx, documentNamed(name)).
		Return(&document.LoadOutput{Records: records}, nil)
}

// ExpectDocumentLoadError expects one load of name and fails it with err
func ExpectDocumentLoadError(
	ctx context.Context, mockRepo *documentmock.MockRepository,
	name string, err error,
) *gomock.Call {
	return mockRepo.EXPECT().
		Load(ctx, documentNamed(name)).
		Return(nil, err)
}

// ExpectDocumentSave expects one save of name with any records
func ExpectDocumentSave(
	ctx context.Context, mockRepo *documentmock.MockRepository,
	name string,
) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, documentNamed(name)).
		Return(&document.SaveOutput{}, nil)
}

// ExpectNoDocumentSave fails the test if anything is saved
func ExpectNoDocumentSave(mockRepo *documentmock.MockRepository) {
	mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
}

// documentNamed matches a LoadInput or SaveInput by document name
type documentNamed string

func (m documentNamed) Matches(x any) bool {
	switch input := x.(type) {
	case document.LoadInput:
		return input.Document == string(m)
	case document.SaveInput:
		return input.Document == string(m)
	default:
		return false
	}
}

func (m documentNamed) String() string {
	return "is document " + string(m)
}
