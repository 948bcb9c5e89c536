package regions

import (
	"bus-electrification-service/internal/domain"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// parseRegion turns one GEOID/WKT pair into a validated region.
func parseRegion(id, text string) (domain.Region, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Region{}, fmt.Errorf("empty GEOID: %w", domain.ErrInvalidRegion)
	}

	g, err := wkt.Unmarshal(strings.TrimSpace(text))
	if err != nil {
		return domain.Region{}, fmt.Errorf("region %q: parse wkt: %w: %w", id, domain.ErrInvalidRegion, err)
	}

	return domain.NewRegion(id, g)
}

func regionWarning(cause string) domain.Warning {
	return domain.Warning{Stage: domain.StageRegions, Cause: cause}
}
