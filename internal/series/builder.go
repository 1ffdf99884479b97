// internal/series/builder.go
package series

import (
	"sort"
	"time"

	"github.com/biocom/playauto-go/internal/domain"
)

// Granularity selects the aggregation period for a series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Point is one aggregated period: the period start and the total quantity
// shipped within it.
type Point struct {
	Period   time.Time `json:"period"`
	Quantity float64   `json:"quantity"`
}

// Series is a gap-filled, strictly increasing sequence of periods for one
// SKU. An empty series means the SKU has no outbound history.
type Series []Point

// Values returns just the quantities, in period order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Quantity
	}
	return out
}

// Last returns the final observed period, or the zero time for an empty
// series.
func (s Series) Last() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Period
}

// Builder aggregates raw shipment events into complete per-SKU series.
type Builder struct {
	granularity Granularity
}

func NewBuilder(g Granularity) *Builder {
	return &Builder{granularity: g}
}

func (b *Builder) Granularity() Granularity {
	return b.granularity
}

// Build aggregates the outbound events of a single SKU into a gap-filled
// series. Events for other directions are ignored; an empty input yields an
// empty series rather than an error.
func (b *Builder) Build(events []domain.ShipmentEvent) Series {
	sums := make(map[time.Time]float64)
	var minPeriod, maxPeriod time.Time

	for _, ev := range events {
		if ev.Direction != domain.DirectionOutbound {
			continue
		}
		period := b.truncate(ev.OccurredAt)
		sums[period] += float64(ev.Quantity)
		if minPeriod.IsZero() || period.Before(minPeriod) {
			minPeriod = period
		}
		if maxPeriod.IsZero() || period.After(maxPeriod) {
			maxPeriod = period
		}
	}

	if len(sums) == 0 {
		return nil
	}

	// Walk the full period index so gaps come out zero-filled.
	out := make(Series, 0, len(sums))
	for period := minPeriod; !period.After(maxPeriod); period = b.next(period) {
		out = append(out, Point{Period: period, Quantity: sums[period]})
	}
	return out
}

// BuildAll groups events by SKU and builds one series per SKU. SKUs whose
// events are all non-outbound come back absent from the map.
func (b *Builder) BuildAll(events []domain.ShipmentEvent) map[string]Series {
	bySKU := make(map[string][]domain.ShipmentEvent)
	for _, ev := range events {
		bySKU[ev.SKU] = append(bySKU[ev.SKU], ev)
	}

	out := make(map[string]Series, len(bySKU))
	for sku, evs := range bySKU {
		if s := b.Build(evs); len(s) > 0 {
			out[sku] = s
		}
	}
	return out
}

// SKUs returns the sorted keys of a series map, for deterministic iteration.
func SKUs(m map[string]Series) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b *Builder) truncate(t time.Time) time.Time {
	t = t.UTC()
	switch b.granularity {
	case Weekly:
		day := t.Truncate(24 * time.Hour)
		// Roll back to Monday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t.Truncate(24 * time.Hour)
	}
}

func (b *Builder) next(t time.Time) time.Time {
	switch b.granularity {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// PeriodsPerYear reports the seasonal cycle length for the granularity.
func (g Granularity) PeriodsPerYear() int {
	switch g {
	case Weekly:
		return 52
	case Monthly:
		return 12
	default:
		return 365
	}
}

// SeasonalLag is the lag used by the seasonal autoregressive family.
func (g Granularity) SeasonalLag() int {
	switch g {
	case Weekly:
		return 4
	case Monthly:
		return 12
	default:
		return 30
	}
}
