package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeError(t *testing.T) {
	cause := errors.New("invalid UTF-8 at byte 12")
	err := &DecodeError{
		FilePath:  "exports/ledger.csv",
		Encodings: []string{"utf-8-sig", "cp1252"},
		Err:       cause,
	}

	assert.Equal(t, "unable to decode 'exports/ledger.csv' with any of [utf-8-sig, cp1252]: invalid UTF-8 at byte 12", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestMissingColumnError(t *testing.T) {
	tests := []struct {
		name     string
		err      *MissingColumnError
		expected string
	}{
		{
			name:     "with dataset",
			err:      &MissingColumnError{FilePath: "Unimarket Export.csv", Dataset: "purchasing", Column: "AcctPart4"},
			expected: "missing required column in purchasing export 'Unimarket Export.csv': AcctPart4",
		},
		{
			name:     "without dataset",
			err:      &MissingColumnError{FilePath: "ytd.csv", Column: "DOC_CODE"},
			expected: "missing required column in 'ytd.csv': DOC_CODE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestMissingColumnError_As(t *testing.T) {
	wrapped := fmt.Errorf("aggregating purchasing export: %w", &MissingColumnError{FilePath: "a.csv", Column: "OrderNumber"})

	var mce *MissingColumnError
	require.True(t, errors.As(wrapped, &mce))
	assert.Equal(t, "OrderNumber", mce.Column)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{FilePath: "/data/in.csv", Reason: "file does not exist"}
	assert.Equal(t, "validation failed for /data/in.csv: file does not exist", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := &InvalidFormatError{FilePath: "x.csv", ExpectedFormat: "delimited text with header row", Msg: "file is empty"}
		assert.Equal(t, "invalid format in file 'x.csv': file is empty. Expected: delimited text with header row", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("bare quote")
		err := &InvalidFormatError{FilePath: "x.csv", ExpectedFormat: "CSV", Msg: "malformed record", Err: cause}
		assert.Contains(t, err.Error(), "bare quote")
		assert.True(t, errors.Is(err, cause))
	})
}
