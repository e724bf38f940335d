package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

// TenderModel MySQL 招标表映射
type TenderModel struct {
	ID               uint             `gorm:"primaryKey;autoIncrement;column:id"`
	ExternalID       string           `gorm:"column:external_id;type:varchar(64);index"`
	Platform         string           `gorm:"column:platform;type:varchar(64);index"`
	CustomerName     string           `gorm:"column:customer_name;type:varchar(255)"`
	Subject          string           `gorm:"column:subject;type:varchar(255)"`
	Description      string           `gorm:"column:description;type:text"`
	PriceAmount      *decimal.Decimal `gorm:"column:price_amount;type:decimal(20,2)"`
	PriceCurrency    string           `gorm:"column:price_currency;type:varchar(8);default:'KZT'"`
	BidStartDate     *time.Time       `gorm:"column:bid_start_date;type:date"`
	BidEndDate       *time.Time       `gorm:"column:bid_end_date;type:date"`
	DeliveryDeadline *time.Time       `gorm:"column:delivery_deadline;type:date"`
	Category         string           `gorm:"column:category;type:varchar(64);index"`
	Region           string           `gorm:"column:region;type:varchar(64);index"`
	RiskScore        float64          `gorm:"column:risk_score;type:decimal(5,2);not null;default:0"`
	RiskLevel        string           `gorm:"column:risk_level;type:varchar(10);not null;default:'low'"`
	CreatedAt        time.Time        `gorm:"column:created_at;index"`
	UpdatedAt        time.Time        `gorm:"column:updated_at"`
}

func (TenderModel) TableName() string { return "tenders" }

// RiskFlagModel MySQL 风险标识表映射
type RiskFlagModel struct {
	ID          uint    `gorm:"primaryKey;autoIncrement;column:id"`
	TenderID    uint    `gorm:"column:tender_id;index;not null"`
	Code        string  `gorm:"column:code;type:varchar(50);not null"`
	Description string  `gorm:"column:description;type:text"`
	Weight      float64 `gorm:"column:weight;type:decimal(5,2);not null;default:0"`
}

func (RiskFlagModel) TableName() string { return "risk_flags" }

// SupplierModel MySQL 供应商表映射
type SupplierModel struct {
	ID              uint             `gorm:"primaryKey;autoIncrement;column:id"`
	Name            string           `gorm:"column:name;type:varchar(255);index;not null"`
	BinIIN          string           `gorm:"column:bin_iin;type:varchar(16)"`
	Region          *string          `gorm:"column:region;type:varchar(64);index"`
	Categories      string           `gorm:"column:categories;type:text"`
	AvgContractSize *decimal.Decimal `gorm:"column:avg_contract_size;type:decimal(20,2)"`
	ContractsCount  *int             `gorm:"column:contracts_count"`
	WinRate         *float64         `gorm:"column:win_rate;type:decimal(4,3)"`
	CreatedAt       time.Time        `gorm:"column:created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at"`
}

func (SupplierModel) TableName() string { return "suppliers" }

// --- mapping helpers ---

func toTenderModel(t *domain.Tender) *TenderModel {
	return &TenderModel{
		ID:               t.ID,
		ExternalID:       t.ExternalID,
		Platform:         t.Platform,
		CustomerName:     t.CustomerName,
		Subject:          t.Subject,
		Description:      t.Description,
		PriceAmount:      t.PriceAmount,
		PriceCurrency:    t.PriceCurrency,
		BidStartDate:     t.BidStartDate,
		BidEndDate:       t.BidEndDate,
		DeliveryDeadline: t.DeliveryDeadline,
		Category:         t.Category,
		Region:           t.Region,
		RiskScore:        t.RiskScore,
		RiskLevel:        string(t.RiskLevel),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toTender(m *TenderModel) *domain.Tender {
	return &domain.Tender{
		ID:               m.ID,
		ExternalID:       m.ExternalID,
		Platform:         m.Platform,
		CustomerName:     m.CustomerName,
		Subject:          m.Subject,
		Description:      m.Description,
		PriceAmount:      m.PriceAmount,
		PriceCurrency:    m.PriceCurrency,
		BidStartDate:     m.BidStartDate,
		BidEndDate:       m.BidEndDate,
		DeliveryDeadline: m.DeliveryDeadline,
		Category:         m.Category,
		Region:           m.Region,
		RiskScore:        m.RiskScore,
		RiskLevel:        domain.RiskLevel(m.RiskLevel),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toRiskFlagModel(f *domain.RiskFlag) *RiskFlagModel {
	return &RiskFlagModel{
		ID:          f.ID,
		TenderID:    f.TenderID,
		Code:        f.Code,
		Description: f.Description,
		Weight:      f.Weight,
	}
}

func toRiskFlag(m *RiskFlagModel) *domain.RiskFlag {
	return &domain.RiskFlag{
		ID:          m.ID,
		TenderID:    m.TenderID,
		Code:        m.Code,
		Description: m.Description,
		Weight:      m.Weight,
	}
}

func toSupplierModel(s *domain.Supplier) *SupplierModel {
	return &SupplierModel{
		ID:              s.ID,
		Name:            s.Name,
		BinIIN:          s.BinIIN,
		Region:          s.Region,
		Categories:      s.Categories,
		AvgContractSize: s.AvgContractSize,
		ContractsCount:  s.ContractsCount,
		WinRate:         s.WinRate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toSupplier(m *SupplierModel) *domain.Supplier {
	return &domain.Supplier{
		ID:              m.ID,
		Name:            m.Name,
		BinIIN:          m.BinIIN,
		Region:          m.Region,
		Categories:      m.Categories,
		AvgContractSize: m.AvgContractSize,
		ContractsCount:  m.ContractsCount,
		WinRate:         m.WinRate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
