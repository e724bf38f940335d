// 包 采购招标服务的领域模型、风控规则、匹配评分与仓储接口
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrTenderNotFound 招标不存在
var ErrTenderNotFound = errors.New("tender not found")

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// 风险分数阈值
const (
	MediumRiskThreshold = 30.0
	HighRiskThreshold   = 60.0
	MaxRiskScore        = 100.0
)

// RiskLevelForScore 按固定阈值将分数映射为风险等级
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskLevelHigh
	case score >= MediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// ClampRiskScore 将分数收敛到 [0, 100]
func ClampRiskScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > MaxRiskScore {
		return MaxRiskScore
	}
	return score
}

// Tender 招标实体
type Tender struct {
	ID               uint
	ExternalID       string
	Platform         string
	CustomerName     string
	Subject          string
	Description      string
	PriceAmount      *decimal.Decimal
	PriceCurrency    string
	BidStartDate     *time.Time
	BidEndDate       *time.Time
	DeliveryDeadline *time.Time
	Category         string
	Region           string
	RiskScore        float64
	RiskLevel        RiskLevel
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RiskFlag 触发的风险标识。每次重算整体替换，不做增量合并。
type RiskFlag struct {
	ID          uint
	TenderID    uint
	Code        string
	Description string
	Weight      float64
}

// TotalWeight 对规则结果做纯折叠，累加触发标识的权重
func TotalWeight(flags []*RiskFlag) float64 {
	var total float64
	for _, f := range flags {
		total += f.Weight
	}
	return total
}
