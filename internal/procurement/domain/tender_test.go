package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

func TestRiskLevelForScore_Boundaries(t *testing.T) {
	assert.Equal(t, domain.RiskLevelLow, domain.RiskLevelForScore(0))
	assert.Equal(t, domain.RiskLevelLow, domain.RiskLevelForScore(29.9))
	assert.Equal(t, domain.RiskLevelMedium, domain.RiskLevelForScore(30))
	assert.Equal(t, domain.RiskLevelMedium, domain.RiskLevelForScore(59.9))
	assert.Equal(t, domain.RiskLevelHigh, domain.RiskLevelForScore(60))
	assert.Equal(t, domain.RiskLevelHigh, domain.RiskLevelForScore(100))
}

func TestClampRiskScore(t *testing.T) {
	assert.Equal(t, 0.0, domain.ClampRiskScore(-5))
	assert.Equal(t, 45.0, domain.ClampRiskScore(45))
	assert.Equal(t, 100.0, domain.ClampRiskScore(120))
}

func TestTotalWeight(t *testing.T) {
	assert.Equal(t, 0.0, domain.TotalWeight(nil))

	flags := []*domain.RiskFlag{
		{Code: "A", Weight: 25},
		{Code: "B", Weight: 20},
	}
	assert.Equal(t, 45.0, domain.TotalWeight(flags))
}
