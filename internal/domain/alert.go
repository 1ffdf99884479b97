// internal/domain/alert.go
package domain

import "time"

// AlertType categorizes an alert.
type AlertType string

const (
	AlertShortage  AlertType = "shortage"
	AlertReorder   AlertType = "reorder_timing"
	AlertExpiry    AlertType = "expiry"
	AlertOverstock AlertType = "overstock"
)

// Severity orders alerts from most to least urgent.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityCaution  Severity = "caution"
)

// Rank returns a sortable weight, lower is more urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityCaution:
		return 2
	}
	return 3
}

// DemandTrend summarizes the direction of the forecast across the horizon.
type DemandTrend string

const (
	TrendRising  DemandTrend = "rising"
	TrendFalling DemandTrend = "falling"
	TrendSteady  DemandTrend = "steady"
)

// AlertFigures carries the numbers behind an alert so consumers can render
// or re-derive the message without another lookup.
type AlertFigures struct {
	CurrentStock         int         `json:"current_stock"`
	SafetyStock          *int        `json:"safety_stock,omitempty"`
	LeadTimeDays         *int        `json:"lead_time_days,omitempty"`
	DailyUsage           float64     `json:"daily_usage"`
	MonthlyForecast      []float64   `json:"monthly_forecast,omitempty"`
	ConsumptionDays      float64     `json:"consumption_days,omitempty"`
	DaysUntilExpiry      *int        `json:"days_until_expiry,omitempty"`
	RecommendedSafety    float64     `json:"recommended_safety_stock,omitempty"`
	Trend                DemandTrend `json:"trend,omitempty"`
	ForecastFromOverride bool        `json:"forecast_from_override,omitempty"`
}

// Alert is an ephemeral, recomputed decision-engine output. It has no
// identity across evaluations; consumers dedupe by (SKU, Type) if needed.
type Alert struct {
	Type        AlertType    `json:"type"`
	Severity    Severity     `json:"severity"`
	SKU         string       `json:"sku"`
	ProductName string       `json:"product_name"`
	Message     string       `json:"message"`
	Figures     AlertFigures `json:"figures"`
	EvaluatedAt time.Time    `json:"evaluated_at"`
}
