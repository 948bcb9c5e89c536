package regions

import (
	"bus-electrification-service/internal/platform/db"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when TEST_DATABASE_URL is set.
func TestSQLRegionRepositoryRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitSchema(ctx, conn))
	_, err = conn.ExecContext(ctx, "DELETE FROM dac_regions")
	require.NoError(t, err)

	regions, _, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	n, err := SeedRegions(ctx, conn, regions)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Seeding twice upserts rather than duplicating.
	_, err = SeedRegions(ctx, conn, regions)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx,
		"INSERT INTO dac_regions (geoid, geom_wkt) VALUES ('bad', 'not wkt')")
	require.NoError(t, err)

	got, warnings, err := NewSQLRegionRepository(conn).ListRegions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, regions[0].ID, got[0].ID)
	assert.Equal(t, regions[0].Geometry, got[0].Geometry)
	assert.Len(t, warnings, 1)
}

func TestInitSchemaNilDB(t *testing.T) {
	assert.Error(t, InitSchema(context.Background(), nil))
}
