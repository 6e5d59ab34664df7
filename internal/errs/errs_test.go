package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError_Error(t *testing.T) {
	err := NewSchemaError("loader.shape", "required column is absent", "Country", "Year")
	assert.Equal(t,
		"loader.shape: schema error: required column is absent (columns: Country, Year)",
		err.Error())

	bare := NewSchemaError("stats.New", "unparsable year header")
	assert.Equal(t, "stats.New: schema error: unparsable year header", bare.Error())
}

func TestEmptyRangeError_Error(t *testing.T) {
	err := NewEmptyRangeError(1960, 1965)
	assert.Equal(t, "no data available for the requested year interval (1960, 1965)", err.Error())
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("gdp report: %w", NewEmptyRangeError(2030, 2040))

	var rangeErr *EmptyRangeError
	assert.True(t, errors.As(wrapped, &rangeErr))
	assert.Equal(t, 2030, rangeErr.From)
	assert.Equal(t, 2040, rangeErr.To)

	var schemaErr *SchemaError
	assert.False(t, errors.As(wrapped, &schemaErr))
}
