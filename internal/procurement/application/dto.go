// 包 采购招标服务的应用层:风险聚合、供应商匹配、报表门面、数据导入与查询
package application

import (
	"time"

	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

const dateLayout = "2006-01-02"

// TenderDTO 招标 DTO
type TenderDTO struct {
	ID               uint    `json:"id"`
	ExternalID       string  `json:"external_id,omitempty"`
	Platform         string  `json:"platform,omitempty"`
	CustomerName     string  `json:"customer_name,omitempty"`
	Subject          string  `json:"subject,omitempty"`
	Description      string  `json:"description,omitempty"`
	PriceAmount      string  `json:"price_amount,omitempty"`
	PriceCurrency    string  `json:"price_currency"`
	BidStartDate     string  `json:"bid_start_date,omitempty"`
	BidEndDate       string  `json:"bid_end_date,omitempty"`
	DeliveryDeadline string  `json:"delivery_deadline,omitempty"`
	Category         string  `json:"category,omitempty"`
	Region           string  `json:"region,omitempty"`
	RiskScore        float64 `json:"risk_score"`
	RiskLevel        string  `json:"risk_level"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
}

// RiskFlagDTO 风险标识 DTO
type RiskFlagDTO struct {
	ID          uint    `json:"id,omitempty"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// RiskResultDTO 风险重算结果 DTO
type RiskResultDTO struct {
	TenderID  uint          `json:"tender_id"`
	RiskScore float64       `json:"risk_score"`
	RiskLevel string        `json:"risk_level"`
	Flags     []RiskFlagDTO `json:"flags"`
}

// SupplierDTO 供应商 DTO
type SupplierDTO struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	BinIIN          string   `json:"bin_iin,omitempty"`
	Region          *string  `json:"region"`
	Categories      string   `json:"categories,omitempty"`
	AvgContractSize string   `json:"avg_contract_size,omitempty"`
	ContractsCount  *int     `json:"contracts_count,omitempty"`
	WinRate         *float64 `json:"win_rate,omitempty"`
}

// SupplierMatchDTO 供应商匹配结果 DTO
type SupplierMatchDTO struct {
	SupplierID      uint     `json:"supplier_id"`
	Name            string   `json:"name"`
	Region          *string  `json:"region"`
	MatchScore      float64  `json:"match_score"`
	AvgContractSize string   `json:"avg_contract_size,omitempty"`
	WinRate         *float64 `json:"win_rate,omitempty"`
}

// TenderReportDTO 报表响应 DTO
type TenderReportDTO struct {
	Tender    TenderDTO          `json:"tender"`
	RiskFlags []RiskFlagDTO      `json:"risk_flags"`
	Suppliers []SupplierMatchDTO `json:"suppliers"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func toTenderDTO(t *domain.Tender) TenderDTO {
	dto := TenderDTO{
		ID:               t.ID,
		ExternalID:       t.ExternalID,
		Platform:         t.Platform,
		CustomerName:     t.CustomerName,
		Subject:          t.Subject,
		Description:      t.Description,
		PriceCurrency:    t.PriceCurrency,
		BidStartDate:     formatDate(t.BidStartDate),
		BidEndDate:       formatDate(t.BidEndDate),
		DeliveryDeadline: formatDate(t.DeliveryDeadline),
		Category:         t.Category,
		Region:           t.Region,
		RiskScore:        t.RiskScore,
		RiskLevel:        string(t.RiskLevel),
		CreatedAt:        t.CreatedAt.Unix(),
		UpdatedAt:        t.UpdatedAt.Unix(),
	}
	if t.PriceAmount != nil {
		dto.PriceAmount = t.PriceAmount.String()
	}
	return dto
}

func toRiskFlagDTO(f *domain.RiskFlag) RiskFlagDTO {
	return RiskFlagDTO{
		ID:          f.ID,
		Code:        f.Code,
		Description: f.Description,
		Weight:      f.Weight,
	}
}

func toRiskFlagDTOs(flags []*domain.RiskFlag) []RiskFlagDTO {
	dtos := make([]RiskFlagDTO, 0, len(flags))
	for _, f := range flags {
		dtos = append(dtos, toRiskFlagDTO(f))
	}
	return dtos
}

func toSupplierDTO(s *domain.Supplier) SupplierDTO {
	dto := SupplierDTO{
		ID:             s.ID,
		Name:           s.Name,
		BinIIN:         s.BinIIN,
		Region:         s.Region,
		Categories:     s.Categories,
		ContractsCount: s.ContractsCount,
		WinRate:        s.WinRate,
	}
	if s.AvgContractSize != nil {
		dto.AvgContractSize = s.AvgContractSize.String()
	}
	return dto
}

func toSupplierMatchDTO(m *domain.MatchResult) SupplierMatchDTO {
	dto := SupplierMatchDTO{
		SupplierID: m.Supplier.ID,
		Name:       m.Supplier.Name,
		Region:     m.Supplier.Region,
		MatchScore: m.Score,
		WinRate:    m.Supplier.WinRate,
	}
	if m.Supplier.AvgContractSize != nil {
		dto.AvgContractSize = m.Supplier.AvgContractSize.String()
	}
	return dto
}
