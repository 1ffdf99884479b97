// internal/forecast/seasonal.go
package forecast

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SeasonalProfiles maps a SKU to twelve per-calendar-month demand
// multipliers (index 0 = January). Profiles are loaded as data so new SKUs
// can be tuned without code changes; a SKU without a profile simply gets no
// seasonal adjustment.
type SeasonalProfiles map[string][12]float64

// LoadProfiles reads a profile file. A missing file is a normal state and
// yields an empty map.
func LoadProfiles(path string) (SeasonalProfiles, error) {
	if path == "" {
		return SeasonalProfiles{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return SeasonalProfiles{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seasonal profiles %s: %w", path, err)
	}

	raw := make(map[string][]float64)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode seasonal profiles %s: %w", path, err)
	}

	profiles := make(SeasonalProfiles, len(raw))
	for sku, factors := range raw {
		if len(factors) != 12 {
			return nil, fmt.Errorf("seasonal profile for %s has %d factors, want 12", sku, len(factors))
		}
		var p [12]float64
		copy(p[:], factors)
		profiles[sku] = p
	}
	return profiles, nil
}

// Multiplier returns the profile factor for a SKU and calendar month.
func (sp SeasonalProfiles) Multiplier(sku string, month time.Month) (float64, bool) {
	p, ok := sp[sku]
	if !ok {
		return 1, false
	}
	return p[int(month)-1], true
}
