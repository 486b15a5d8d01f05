package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/interview-prep/internal/repositories"
)

func TestClassifyStorageError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantKind ErrorKind
	}{
		{name: "not found", err: fmt.Errorf("lookup: %w", repositories.ErrNotFound), wantKind: KindNotFound},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), wantKind: KindStorageTimeout},
		{name: "anything else", err: errors.New("connection refused"), wantKind: KindStorageFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyStorageError("interview not found", tc.err)
			assert.Equal(t, tc.wantKind, KindOf(err))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestRawResponseOf(t *testing.T) {
	err := fmt.Errorf("generation: %w", schemaViolation(`[{"question":1}]`, "item %d is invalid", 0))
	assert.Equal(t, KindSchemaViolation, KindOf(err))
	assert.Equal(t, `[{"question":1}]`, RawResponseOf(err))

	assert.Empty(t, RawResponseOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}
