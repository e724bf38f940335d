package application

import (
	"context"

	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

// ReportService 报表门面，组合风险聚合器与匹配器的输出。
// 出报表前总是先重算风险，不缓存、不提供旧数据。
type ReportService struct {
	tenders  domain.TenderRepository
	risk     *RiskService
	matching *MatchingService
}

// NewReportService 创建新的 ReportService 实例
func NewReportService(tenders domain.TenderRepository, risk *RiskService, matching *MatchingService) *ReportService {
	return &ReportService{
		tenders:  tenders,
		risk:     risk,
		matching: matching,
	}
}

// TenderReport 生成招标报表:重算后的风险、当前标识集合与候选供应商。
func (s *ReportService) TenderReport(ctx context.Context, tenderID uint) (*TenderReportDTO, error) {
	risk, err := s.risk.RecomputeRisk(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	// 重新加载,拿到落盘后的分数与等级
	tender, err := s.tenders.Get(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrTenderNotFound
	}

	matches, err := s.matching.MatchSuppliers(ctx, tender)
	if err != nil {
		return nil, err
	}

	return &TenderReportDTO{
		Tender:    toTenderDTO(tender),
		RiskFlags: risk.Flags,
		Suppliers: matches,
	}, nil
}
