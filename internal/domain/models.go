// internal/domain/models.go
package domain

import "time"

// Direction tags a shipment event as inbound (receipt) or outbound (shipment).
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ShipmentEvent is a single immutable transaction-log fact. Quantities are
// always positive; Direction carries the sign.
type ShipmentEvent struct {
	ID         int64     `json:"id" db:"id"`
	SKU        string    `json:"sku" db:"sku"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Direction  Direction `json:"direction" db:"direction"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}

// Product is the mutable inventory record for one SKU. SafetyStock,
// LeadTimeDays and ExpiryDate are nullable: alert rules that depend on them
// are skipped when they are absent.
type Product struct {
	SKU            string     `json:"sku" db:"sku"`
	Name           string     `json:"name" db:"name"`
	Category       string     `json:"category" db:"category"`
	CurrentStock   int        `json:"current_stock" db:"current_stock"`
	SafetyStock    *int       `json:"safety_stock" db:"safety_stock"`
	LeadTimeDays   *int       `json:"lead_time_days" db:"lead_time_days"`
	MOQ            int        `json:"moq" db:"moq"`
	BundleMultiple int        `json:"bundle_multiple" db:"bundle_multiple"`
	ExpiryDate     *time.Time `json:"expiry_date" db:"expiry_date"`
	Manufacturer   string     `json:"manufacturer" db:"manufacturer"`
	OutboundTotal  int        `json:"outbound_total" db:"outbound_total"`
	InboundTotal   int        `json:"inbound_total" db:"inbound_total"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// IsBundle reports whether outbound quantities for this product must be
// multiplied by BundleMultiple before being applied against stock.
func (p *Product) IsBundle() bool {
	return p.BundleMultiple > 1
}

// ManualAdjustment is one append-only row of the human override log. The
// three adjusted values are nullable; an override only replaces the model
// forecast when all three are present.
type ManualAdjustment struct {
	ID         int64     `json:"id" db:"id"`
	SKU        string    `json:"sku" db:"sku"`
	Predicted1 float64   `json:"predicted_1" db:"predicted_1"`
	Predicted2 float64   `json:"predicted_2" db:"predicted_2"`
	Predicted3 float64   `json:"predicted_3" db:"predicted_3"`
	Adjusted1  *float64  `json:"adjusted_1" db:"adjusted_1"`
	Adjusted2  *float64  `json:"adjusted_2" db:"adjusted_2"`
	Adjusted3  *float64  `json:"adjusted_3" db:"adjusted_3"`
	Reason     string    `json:"reason" db:"reason"`
	EditedBy   string    `json:"edited_by" db:"edited_by"`
	EditedAt   time.Time `json:"edited_at" db:"edited_at"`
}

// AdjustedValues returns the three adjusted forecast values and whether the
// override is complete (all three present).
func (a *ManualAdjustment) AdjustedValues() ([]float64, bool) {
	if a == nil || a.Adjusted1 == nil || a.Adjusted2 == nil || a.Adjusted3 == nil {
		return nil, false
	}
	return []float64{*a.Adjusted1, *a.Adjusted2, *a.Adjusted3}, true
}
