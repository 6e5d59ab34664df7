package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/internal/errs"
	"emistat/internal/table"
)

func TestUppercaseColumn(t *testing.T) {
	tbl, err := table.New(
		table.StringColumn("Country", []string{"Poland", "france", "VIET NAM"}),
		table.IntColumn("Year", []int64{2020, 2020, 2020}),
	)
	require.NoError(t, err)

	upper, err := UppercaseColumn(tbl, "Country")
	require.NoError(t, err)

	got, err := upper.Strings("Country")
	require.NoError(t, err)
	assert.Equal(t, []string{"POLAND", "FRANCE", "VIET NAM"}, got)
}

func TestUppercaseColumn_SchemaErrors(t *testing.T) {
	tbl, err := table.New(table.IntColumn("Year", []int64{2020}))
	require.NoError(t, err)

	tests := []struct {
		name   string
		column string
	}{
		{name: "absent column", column: "Country"},
		{name: "non-text column", column: "Year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UppercaseColumn(tbl, tt.column)
			var schemaErr *errs.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Contains(t, schemaErr.Columns, tt.column)
		})
	}
}

func TestStandardizeNames(t *testing.T) {
	tbl, err := table.New(
		table.StringColumn("Country", []string{"VIET NAM", "POLAND", "KOREA, REP."}),
	)
	require.NoError(t, err)

	aliases := map[string]string{
		"VIET NAM":    "VIETNAM",
		"KOREA, REP.": "SOUTH KOREA",
	}
	standardized, err := StandardizeNames(tbl, aliases)
	require.NoError(t, err)

	got, err := standardized.Strings("Country")
	require.NoError(t, err)
	// Unmapped values pass through unchanged.
	assert.Equal(t, []string{"VIETNAM", "POLAND", "SOUTH KOREA"}, got)
}

func TestFilterNonCountries(t *testing.T) {
	tbl, err := table.New(
		table.StringColumn("Country", []string{"WORLD", "POLAND", "EURO AREA"}),
		table.StringColumn("Country Code", []string{"WLD", "POL", "EMU"}),
	)
	require.NoError(t, err)

	filtered, err := FilterNonCountries(tbl, []string{"WLD", "EMU"})
	require.NoError(t, err)

	got, err := filtered.Strings("Country")
	require.NoError(t, err)
	assert.Equal(t, []string{"POLAND"}, got)
}

func TestFilterNonCountries_MissingCodeColumn(t *testing.T) {
	// The emissions source has no Country Code column; calling the filter on
	// it is a caller bug and surfaces as a SchemaError.
	tbl, err := table.New(table.StringColumn("Country", []string{"POLAND"}))
	require.NoError(t, err)

	_, err = FilterNonCountries(tbl, []string{"WLD"})
	var schemaErr *errs.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Columns, "Country Code")
}
