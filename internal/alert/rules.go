// internal/alert/rules.go
package alert

import (
	"fmt"
	"math"
	"time"

	"github.com/biocom/playauto-go/internal/domain"
)

// ruleInput is everything one rule may look at for one product.
type ruleInput struct {
	Product *domain.Product
	Derived derived
	Figures domain.AlertFigures
	Now     time.Time
}

// rule is one independent alert check. A rule that does not apply (missing
// inputs, predicate false) returns no alerts; rules never error.
type rule struct {
	name  string
	apply func(in ruleInput) []domain.Alert
}

// defaultRules returns the rule set in a fixed evaluation order.
func (e *Engine) defaultRules() []rule {
	return []rule{
		{name: "shortage", apply: e.shortageRule},
		{name: "reorder_timing", apply: e.reorderRule},
		{name: "expiry", apply: e.expiryRule},
		{name: "overstock", apply: e.overstockRule},
	}
}

// shortageRule compares stock against the configured safety stock. Below
// half the threshold is critical, below the threshold is a warning.
func (e *Engine) shortageRule(in ruleInput) []domain.Alert {
	p := in.Product
	if p.SafetyStock == nil {
		return nil
	}
	ss := float64(*p.SafetyStock)
	stock := float64(p.CurrentStock)

	switch {
	case stock < ss*0.5:
		return []domain.Alert{e.newAlert(in, domain.AlertShortage, domain.SeverityCritical,
			fmt.Sprintf("%s stock %d is below half of safety stock %d", p.Name, p.CurrentStock, *p.SafetyStock))}
	case stock < ss:
		return []domain.Alert{e.newAlert(in, domain.AlertShortage, domain.SeverityWarning,
			fmt.Sprintf("%s stock %d is below safety stock %d", p.Name, p.CurrentStock, *p.SafetyStock))}
	}
	return nil
}

// reorderRule estimates how long until stock hits the safety threshold. A
// short runway above the threshold is a warning; already at or under it with
// less cover than the lead time is critical.
func (e *Engine) reorderRule(in ruleInput) []domain.Alert {
	p := in.Product
	du := in.Derived.DailyUsage
	if p.SafetyStock == nil || du <= 0 {
		return nil
	}
	ss := *p.SafetyStock
	stock := p.CurrentStock

	if stock > ss {
		daysToThreshold := float64(stock-ss) / du
		if daysToThreshold <= e.thresholds.ReorderWarningDays {
			return []domain.Alert{e.newAlert(in, domain.AlertReorder, domain.SeverityWarning,
				fmt.Sprintf("%s reaches safety stock in %.1f days at current usage", p.Name, daysToThreshold))}
		}
		return nil
	}

	if p.LeadTimeDays == nil {
		return nil
	}
	coverDays := float64(stock) / du
	if coverDays < float64(*p.LeadTimeDays) {
		return []domain.Alert{e.newAlert(in, domain.AlertReorder, domain.SeverityCritical,
			fmt.Sprintf("%s has %.1f days of stock cover, less than the %d day lead time", p.Name, coverDays, *p.LeadTimeDays))}
	}
	return nil
}

// expiryRule tiers severity by how close the expiry date is, and raises a
// separate critical alert for stock already past it.
func (e *Engine) expiryRule(in ruleInput) []domain.Alert {
	p := in.Product
	if p.ExpiryDate == nil {
		return nil
	}

	daysUntil := daysBetween(in.Now, *p.ExpiryDate)
	in.Figures.DaysUntilExpiry = &daysUntil

	if daysUntil < 0 {
		return []domain.Alert{e.newAlert(in, domain.AlertExpiry, domain.SeverityCritical,
			fmt.Sprintf("%s expired %d days ago", p.Name, -daysUntil))}
	}
	if daysUntil > e.thresholds.ExpiryThresholdDays {
		return nil
	}

	severity := domain.SeverityCaution
	switch {
	case daysUntil <= 7:
		severity = domain.SeverityCritical
	case daysUntil <= 14:
		severity = domain.SeverityWarning
	}
	return []domain.Alert{e.newAlert(in, domain.AlertExpiry, severity,
		fmt.Sprintf("%s expires in %d days", p.Name, daysUntil))}
}

// overstockRule flags stock well beyond what the lead time plus safety
// stock requires.
func (e *Engine) overstockRule(in ruleInput) []domain.Alert {
	p := in.Product
	du := in.Derived.DailyUsage
	if p.SafetyStock == nil || p.LeadTimeDays == nil || du <= 0 {
		return nil
	}

	needed := du*float64(*p.LeadTimeDays) + float64(*p.SafetyStock)
	excess := float64(p.CurrentStock) - needed
	if excess <= needed*e.thresholds.OverstockExcessRatio {
		return nil
	}
	return []domain.Alert{e.newAlert(in, domain.AlertOverstock, domain.SeverityWarning,
		fmt.Sprintf("%s stock %d exceeds the needed %.0f units by %.0f", p.Name, p.CurrentStock, needed, excess))}
}

func (e *Engine) newAlert(in ruleInput, typ domain.AlertType, sev domain.Severity, msg string) domain.Alert {
	return domain.Alert{
		Type:        typ,
		Severity:    sev,
		SKU:         in.Product.SKU,
		ProductName: in.Product.Name,
		Message:     msg,
		Figures:     in.Figures,
		EvaluatedAt: in.Now,
	}
}

// daysBetween counts whole calendar days from now to the target date,
// negative when the target is in the past.
func daysBetween(now, target time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(targetDay.Sub(nowDay).Hours() / 24))
}
