package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier 供应商实体。对本服务只读。
type Supplier struct {
	ID              uint
	Name            string
	BinIIN          string
	Region          *string
	Categories      string
	AvgContractSize *decimal.Decimal
	ContractsCount  *int
	WinRate         *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MatchResult 匹配结果，派生数据，每次请求重新计算，不落库
type MatchResult struct {
	Supplier *Supplier
	Score    float64
}

// 匹配评分参数
const (
	matchBaseScore  = 0.5
	matchSizeBonus  = 0.3
	matchWinRateCap = 0.2

	// MaxCandidates 候选供应商上限。截断发生在评分之前。
	MaxCandidates = 5
)

var (
	minContractRatio = decimal.NewFromFloat(0.5)
	maxContractRatio = decimal.NewFromFloat(2.0)
)

// MatchScore 计算招标与供应商的匹配度，结果落在 [0, 1]。
// 任一可选字段缺失只会使对应加分项不生效，不会报错。
func MatchScore(tender *Tender, supplier *Supplier) float64 {
	score := matchBaseScore

	if tender.PriceAmount != nil && supplier.AvgContractSize != nil &&
		!tender.PriceAmount.IsZero() && supplier.AvgContractSize.IsPositive() {
		ratio := tender.PriceAmount.Div(*supplier.AvgContractSize)
		if ratio.GreaterThanOrEqual(minContractRatio) && ratio.LessThanOrEqual(maxContractRatio) {
			score += matchSizeBonus
		}
	}

	if supplier.WinRate != nil {
		score += min(*supplier.WinRate, matchWinRateCap)
	}

	return min(score, 1.0)
}
