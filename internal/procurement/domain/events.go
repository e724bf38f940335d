package domain

import "time"

// TenderRiskRecomputedEventType 风险重算完成集成事件类型
const TenderRiskRecomputedEventType = "tender.risk_recomputed"

// TenderRiskRecomputedEvent 风险重算完成事件
type TenderRiskRecomputedEvent struct {
	TenderID   uint      `json:"tender_id"`
	RiskScore  float64   `json:"risk_score"`
	RiskLevel  RiskLevel `json:"risk_level"`
	FlagCodes  []string  `json:"flag_codes"`
	OccurredAt time.Time `json:"occurred_at"`
}
