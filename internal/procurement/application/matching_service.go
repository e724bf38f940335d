package application

import (
	"context"
	"sort"

	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

// MatchingService 供应商匹配。候选筛选与评分均为只读计算。
type MatchingService struct {
	tenders   domain.TenderRepository
	suppliers domain.SupplierRepository
}

// NewMatchingService 创建新的 MatchingService 实例
func NewMatchingService(tenders domain.TenderRepository, suppliers domain.SupplierRepository) *MatchingService {
	return &MatchingService{
		tenders:   tenders,
		suppliers: suppliers,
	}
}

// MatchSuppliers 为招标筛选并评分候选供应商。
// 候选集在评分前截断到 MaxCandidates，截断后的结果按匹配度降序返回，
// 因此不保证是全部合格供应商中的前五名。
func (s *MatchingService) MatchSuppliers(ctx context.Context, tender *domain.Tender) ([]SupplierMatchDTO, error) {
	candidates, err := s.suppliers.FindCandidates(ctx, tender.Category, tender.Region, domain.MaxCandidates)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.MatchResult, 0, len(candidates))
	for _, supplier := range candidates {
		results = append(results, &domain.MatchResult{
			Supplier: supplier,
			Score:    domain.MatchScore(tender, supplier),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	dtos := make([]SupplierMatchDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, toSupplierMatchDTO(r))
	}
	return dtos, nil
}

// MatchSuppliersByID 按招标 ID 匹配。招标不存在返回 ErrTenderNotFound。
func (s *MatchingService) MatchSuppliersByID(ctx context.Context, tenderID uint) ([]SupplierMatchDTO, error) {
	tender, err := s.tenders.Get(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrTenderNotFound
	}
	return s.MatchSuppliers(ctx, tender)
}
