package entities

// PlanID identifies a subscription plan tier.
type PlanID string

const (
	PlanSimple   PlanID = "simple"
	PlanStandard PlanID = "standard"
	PlanPremium  PlanID = "premium"
	PlanUltimate PlanID = "ultimate"
)

// ValidPlanID reports whether id names a known plan tier.
func ValidPlanID(id PlanID) bool {
	switch id {
	case PlanSimple, PlanStandard, PlanPremium, PlanUltimate:
		return true
	}
	return false
}

// Plan describes a subscription tier offered to owners.
type Plan struct {
	ID           PlanID  `json:"id"`
	Name         string  `json:"name"`
	MonthlyPrice float64 `json:"monthly_price"`
	MaxListings  int     `json:"max_listings"` // 0 means unlimited
	Featured     bool    `json:"featured"`
}

// Plans returns the fixed plan catalog, cheapest first.
func Plans() []Plan {
	return []Plan{
		{ID: PlanSimple, Name: "Simple", MonthlyPrice: 499, MaxListings: 3},
		{ID: PlanStandard, Name: "Standard", MonthlyPrice: 999, MaxListings: 10},
		{ID: PlanPremium, Name: "Premium", MonthlyPrice: 1999, MaxListings: 25, Featured: true},
		{ID: PlanUltimate, Name: "Ultimate", MonthlyPrice: 3999, MaxListings: 0, Featured: true},
	}
}
