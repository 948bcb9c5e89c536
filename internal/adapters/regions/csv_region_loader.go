package regions

import (
	"bus-electrification-service/internal/domain"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ColumnGEOID       = "GEOID"
	ColumnGeometry    = "the_geom"
	ColumnDesignation = "DAC_Designation"

	Designated = "Designated as DAC"
)

var ErrMissingColumn = errors.New("missing required column")

// ParseCSV reads designated-area regions from a CalEnviroScreen-style CSV.
// Rows not designated as DAC are ignored. Rows whose geometry cannot be
// parsed or is invalid are dropped and reported as warnings.
func ParseCSV(r io.Reader) ([]domain.Region, []domain.Warning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("parse dac csv: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var idx [3]int
	for i, name := range []string{ColumnGEOID, ColumnGeometry, ColumnDesignation} {
		n, ok := cols[name]
		if !ok {
			return nil, nil, fmt.Errorf("parse dac csv: %w: %s", ErrMissingColumn, name)
		}
		idx[i] = n
	}

	var (
		regions  []domain.Region
		warnings []domain.Warning
	)

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse dac csv: line %d: %w", line, err)
		}

		field := func(i int) string {
			if i < len(rec) {
				return rec[i]
			}
			return ""
		}

		if strings.TrimSpace(field(idx[2])) != Designated {
			continue
		}

		region, err := parseRegion(field(idx[0]), field(idx[1]))
		if err != nil {
			warnings = append(warnings, regionWarning(fmt.Sprintf("line %d dropped: %v", line, err)))
			continue
		}
		regions = append(regions, region)
	}

	return regions, warnings, nil
}

// CSVRegionRepository serves regions straight from a CSV file on disk.
type CSVRegionRepository struct {
	Path string
}

func NewCSVRegionRepository(path string) *CSVRegionRepository {
	return &CSVRegionRepository{Path: path}
}

func (c *CSVRegionRepository) ListRegions(ctx context.Context) ([]domain.Region, []domain.Warning, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("list regions: open %q: %w", c.Path, err)
	}
	defer f.Close()

	regions, warnings, err := ParseCSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("list regions: %q: %w", c.Path, err)
	}
	return regions, warnings, nil
}
