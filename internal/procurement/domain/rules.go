package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// 规则代码
const (
	CodeOverprice      = "OVERPRICE"
	CodeShortBidPeriod = "SHORT_BID_PERIOD"
)

// 规则参数。阈值为固定常量，不提供配置入口。
const (
	overpriceWeight      = 25.0
	overpriceMultiplier  = 1.3
	minComparableCount   = 3
	shortBidPeriodWeight = 20.0
	shortBidPeriodDays   = 3
)

// ComparableFinder 查找同类别、价格非空的其他招标
type ComparableFinder interface {
	FindComparables(ctx context.Context, category string, excludeID uint) ([]*Tender, error)
}

// RiskRule 单条风控规则。规则之间相互独立、无副作用；
// 未触发时返回 nil，可选字段缺失视为规则不适用而非错误。
type RiskRule interface {
	Code() string
	Evaluate(ctx context.Context, tender *Tender, finder ComparableFinder) (*RiskFlag, error)
}

// DefaultRules 当前注册的规则集。新规则在此追加，聚合器无需改动。
func DefaultRules() []RiskRule {
	return []RiskRule{
		OverpriceRule{},
		ShortBidPeriodRule{},
	}
}

// OverpriceRule 价格显著高于同类别均价
type OverpriceRule struct{}

func (OverpriceRule) Code() string { return CodeOverprice }

func (OverpriceRule) Evaluate(ctx context.Context, tender *Tender, finder ComparableFinder) (*RiskFlag, error) {
	if tender.PriceAmount == nil || tender.Category == "" {
		return nil, nil
	}

	comparables, err := finder.FindComparables(ctx, tender.Category, tender.ID)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	count := 0
	for _, c := range comparables {
		if c.PriceAmount == nil {
			continue
		}
		sum = sum.Add(*c.PriceAmount)
		count++
	}
	// 样本不足时均价不具参考性
	if count < minComparableCount {
		return nil, nil
	}

	mean := sum.Div(decimal.NewFromInt(int64(count)))
	if !mean.IsPositive() {
		return nil, nil
	}
	if tender.PriceAmount.LessThanOrEqual(mean.Mul(decimal.NewFromFloat(overpriceMultiplier))) {
		return nil, nil
	}

	delta := tender.PriceAmount.Sub(mean)
	return &RiskFlag{
		Code:        CodeOverprice,
		Description: fmt.Sprintf("Price exceeds the category average by %s", delta.Round(0)),
		Weight:      overpriceWeight,
	}, nil
}

// ShortBidPeriodRule 投标窗口过短
type ShortBidPeriodRule struct{}

func (ShortBidPeriodRule) Code() string { return CodeShortBidPeriod }

func (ShortBidPeriodRule) Evaluate(_ context.Context, tender *Tender, _ ComparableFinder) (*RiskFlag, error) {
	if tender.BidStartDate == nil || tender.BidEndDate == nil {
		return nil, nil
	}

	days := int(tender.BidEndDate.Sub(*tender.BidStartDate).Hours() / 24)
	if days > shortBidPeriodDays {
		return nil, nil
	}

	return &RiskFlag{
		Code:        CodeShortBidPeriod,
		Description: "Bid submission window is very short",
		Weight:      shortBidPeriodWeight,
	}, nil
}
