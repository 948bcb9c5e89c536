package regions

import (
	"bus-electrification-service/internal/domain"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `GEOID,County,the_geom,DAC_Designation
06037000100,Los Angeles,"MULTIPOLYGON(((0 0, 2 0, 2 2, 0 2, 0 0)))",Designated as DAC
06037000200,Los Angeles,"POLYGON((5 5, 6 5, 6 6, 5 6, 5 5))",Designated as DAC
06037000300,Los Angeles,"MULTIPOLYGON(((9 9, 10 9, 10 10, 9 10, 9 9)))",Not Designated
06037000400,Los Angeles,not wkt,Designated as DAC
06037000500,Los Angeles,"POLYGON((0 0, 2 2, 2 0, 0 1, 0 0))",Designated as DAC
`

func TestParseCSV(t *testing.T) {
	regions, warnings, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, regions, 2)
	assert.Equal(t, "06037000100", regions[0].ID)
	assert.Equal(t, "06037000200", regions[1].ID)
	assert.Len(t, regions[1].Geometry, 1)

	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, domain.StageRegions, w.Stage)
		assert.Empty(t, w.RouteID)
	}
	assert.Contains(t, warnings[0].Cause, "line 5")
	assert.Contains(t, warnings[1].Cause, "line 6")
}

func TestParseCSVMissingColumn(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("GEOID,the_geom\n1,POLYGON((0 0, 1 0, 1 1, 0 0))\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColumnDesignation)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	regions, warnings, err := ParseCSV(strings.NewReader("GEOID,the_geom,DAC_Designation\n"))
	require.NoError(t, err)
	assert.Empty(t, regions)
	assert.Empty(t, warnings)
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCSVRegionRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dac.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	regions, warnings, err := NewCSVRegionRepository(path).ListRegions(context.Background())
	require.NoError(t, err)
	assert.Len(t, regions, 2)
	assert.Len(t, warnings, 2)

	_, _, err = NewCSVRegionRepository(filepath.Join(t.TempDir(), "missing.csv")).ListRegions(context.Background())
	assert.Error(t, err)
}

func TestParseRegion(t *testing.T) {
	_, err := parseRegion("  ", "POLYGON((0 0, 1 0, 1 1, 0 0))")
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)

	_, err = parseRegion("x", "LINESTRING(0 0, 1 1)")
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)

	r, err := parseRegion(" 42 ", "POLYGON((0 0, 1 0, 1 1, 0 0))")
	require.NoError(t, err)
	assert.Equal(t, "42", r.ID)
}
