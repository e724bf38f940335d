package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

// RiskService 风险聚合器。执行注册的规则集，折叠权重得到分数与等级，
// 并在单个事务内整体替换标识集合、更新分数并写入 outbox 事件。
type RiskService struct {
	tenders   domain.TenderRepository
	rules     []domain.RiskRule
	publisher domain.EventPublisher
}

// NewRiskService 创建新的 RiskService 实例
func NewRiskService(tenders domain.TenderRepository, rules []domain.RiskRule, publisher domain.EventPublisher) *RiskService {
	return &RiskService{
		tenders:   tenders,
		rules:     rules,
		publisher: publisher,
	}
}

// RecomputeRisk 重算指定招标的风险。每次读取报表前都会重新执行，
// 输入数据不变时结果幂等。招标不存在返回 ErrTenderNotFound。
func (s *RiskService) RecomputeRisk(ctx context.Context, tenderID uint) (*RiskResultDTO, error) {
	tender, err := s.tenders.Get(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrTenderNotFound
	}

	flags := make([]*domain.RiskFlag, 0, len(s.rules))
	for _, rule := range s.rules {
		flag, err := rule.Evaluate(ctx, tender, s.tenders)
		if err != nil {
			return nil, fmt.Errorf("evaluate rule %s: %w", rule.Code(), err)
		}
		if flag != nil {
			flag.TenderID = tender.ID
			flags = append(flags, flag)
		}
	}

	score := domain.ClampRiskScore(domain.TotalWeight(flags))
	level := domain.RiskLevelForScore(score)

	// 标识替换、分数更新与事件写入必须同进退，
	// 读取方不能观察到空集或新旧混杂的标识集合
	err = s.tenders.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.tenders.ReplaceFlags(txCtx, tender.ID, flags); err != nil {
			return err
		}
		if err := s.tenders.UpdateRisk(txCtx, tender.ID, score, level); err != nil {
			return err
		}

		codes := make([]string, 0, len(flags))
		for _, f := range flags {
			codes = append(codes, f.Code)
		}
		return s.publisher.PublishRiskRecomputed(txCtx, domain.TenderRiskRecomputedEvent{
			TenderID:   tender.ID,
			RiskScore:  score,
			RiskLevel:  level,
			FlagCodes:  codes,
			OccurredAt: time.Now(),
		})
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist recomputed risk", "tender_id", tenderID, "error", err)
		return nil, err
	}

	return &RiskResultDTO{
		TenderID:  tender.ID,
		RiskScore: score,
		RiskLevel: string(level),
		Flags:     toRiskFlagDTOs(flags),
	}, nil
}
