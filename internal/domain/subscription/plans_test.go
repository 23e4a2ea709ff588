package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitsFor(t *testing.T) {
	basico := LimitsFor(PlanBasico)
	assert.Equal(t, 5, basico.ProductsLimit)
	assert.Equal(t, 0, basico.FeaturedProductsLimit)
	assert.False(t, basico.AnalyticsEnabled)
	assert.Equal(t, int64(0), basico.MonthlyPrice)

	pro := LimitsFor(PlanPro)
	assert.Equal(t, 25, pro.ProductsLimit)
	assert.Equal(t, 5, pro.FeaturedProductsLimit)
	assert.True(t, pro.AnalyticsEnabled)

	premium := LimitsFor(PlanPremium)
	assert.Equal(t, -1, premium.ProductsLimit)
	assert.Equal(t, 20, premium.FeaturedProductsLimit)
}

func TestLimitsForUnknownPlanFallsBack(t *testing.T) {
	assert.Equal(t, LimitsFor(PlanBasico), LimitsFor(Plan("enterprise")))
}

func TestPriceFor(t *testing.T) {
	assert.Equal(t, int64(3500), PriceFor(PlanPro, CycleMensual))
	assert.Equal(t, int64(35000), PriceFor(PlanPro, CycleAnual))
	assert.Equal(t, int64(65000), PriceFor(PlanPremium, CycleAnual))
	assert.Equal(t, int64(0), PriceFor(PlanBasico, CycleMensual))
}
