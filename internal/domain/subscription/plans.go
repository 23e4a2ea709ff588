package subscription

// Limits bundles what a plan allows.
type Limits struct {
	ProductsLimit         int // -1 means unlimited
	FeaturedProductsLimit int
	AnalyticsEnabled      bool
	MonthlyPrice          int64
	AnnualPrice           int64
}

var planLimits = map[Plan]Limits{
	PlanBasico: {
		ProductsLimit:         5,
		FeaturedProductsLimit: 0,
		AnalyticsEnabled:      false,
		MonthlyPrice:          0,
		AnnualPrice:           0,
	},
	PlanPro: {
		ProductsLimit:         25,
		FeaturedProductsLimit: 5,
		AnalyticsEnabled:      true,
		MonthlyPrice:          3500,
		AnnualPrice:           35000,
	},
	PlanPremium: {
		ProductsLimit:         -1,
		FeaturedProductsLimit: 20,
		AnalyticsEnabled:      true,
		MonthlyPrice:          6500,
		AnnualPrice:           65000,
	},
}

// LimitsFor returns the limits of a plan; unknown plans fall back to basico.
func LimitsFor(plan Plan) Limits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[PlanBasico]
}

// IsValidPlan checks a plan name.
func IsValidPlan(plan Plan) bool {
	_, ok := planLimits[plan]
	return ok
}

// PriceFor returns the plan price for a billing cycle.
func PriceFor(plan Plan, cycle BillingCycle) int64 {
	limits := LimitsFor(plan)
	if cycle == CycleAnual {
		return limits.AnnualPrice
	}
	return limits.MonthlyPrice
}
