package application_test

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

// fakeTenderRepo 内存实现，WithTx 在 fn 失败时恢复快照以模拟回滚。
type fakeTenderRepo struct {
	tenders    map[uint]*domain.Tender
	order      []uint
	flags      map[uint][]*domain.RiskFlag
	nextID     uint
	nextFlagID uint
}

func newFakeTenderRepo() *fakeTenderRepo {
	return &fakeTenderRepo{
		tenders: make(map[uint]*domain.Tender),
		flags:   make(map[uint][]*domain.RiskFlag),
	}
}

func (r *fakeTenderRepo) Create(_ context.Context, tender *domain.Tender) error {
	r.nextID++
	tender.ID = r.nextID
	now := time.Now()
	tender.CreatedAt = now
	tender.UpdatedAt = now
	stored := *tender
	r.tenders[tender.ID] = &stored
	r.order = append(r.order, tender.ID)
	return nil
}

func (r *fakeTenderRepo) Get(_ context.Context, id uint) (*domain.Tender, error) {
	tender, ok := r.tenders[id]
	if !ok {
		return nil, nil
	}
	copied := *tender
	return &copied, nil
}

func (r *fakeTenderRepo) List(_ context.Context, filter domain.TenderListFilter) ([]*domain.Tender, error) {
	var out []*domain.Tender
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.tenders[r.order[i]]
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Platform != "" && t.Platform != filter.Platform {
			continue
		}
		if filter.RiskLevel != "" && t.RiskLevel != filter.RiskLevel {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTenderRepo) FindComparables(_ context.Context, category string, excludeID uint) ([]*domain.Tender, error) {
	var out []*domain.Tender
	for _, id := range r.order {
		t := r.tenders[id]
		if t.ID == excludeID || t.Category != category || t.PriceAmount == nil {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTenderRepo) GetFlags(_ context.Context, tenderID uint) ([]*domain.RiskFlag, error) {
	flags := r.flags[tenderID]
	out := make([]*domain.RiskFlag, 0, len(flags))
	for _, f := range flags {
		copied := *f
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTenderRepo) ReplaceFlags(_ context.Context, tenderID uint, flags []*domain.RiskFlag) error {
	stored := make([]*domain.RiskFlag, 0, len(flags))
	for _, f := range flags {
		r.nextFlagID++
		copied := *f
		copied.ID = r.nextFlagID
		copied.TenderID = tenderID
		stored = append(stored, &copied)
	}
	r.flags[tenderID] = stored
	return nil
}

func (r *fakeTenderRepo) UpdateRisk(_ context.Context, tenderID uint, score float64, level domain.RiskLevel) error {
	if tender, ok := r.tenders[tenderID]; ok {
		tender.RiskScore = score
		tender.RiskLevel = level
		tender.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeTenderRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tendersSnapshot := make(map[uint]*domain.Tender, len(r.tenders))
	for id, t := range r.tenders {
		copied := *t
		tendersSnapshot[id] = &copied
	}
	flagsSnapshot := make(map[uint][]*domain.RiskFlag, len(r.flags))
	for id, flags := range r.flags {
		copied := make([]*domain.RiskFlag, len(flags))
		for i, f := range flags {
			fc := *f
			copied[i] = &fc
		}
		flagsSnapshot[id] = copied
	}

	if err := fn(ctx); err != nil {
		r.tenders = tendersSnapshot
		r.flags = flagsSnapshot
		return err
	}
	return nil
}

// fakeSupplierRepo 内存实现，复刻候选查询的谓词与截断
type fakeSupplierRepo struct {
	suppliers []*domain.Supplier
	nextID    uint
}

func (r *fakeSupplierRepo) Create(_ context.Context, supplier *domain.Supplier) error {
	r.nextID++
	supplier.ID = r.nextID
	stored := *supplier
	r.suppliers = append(r.suppliers, &stored)
	return nil
}

func (r *fakeSupplierRepo) FindCandidates(_ context.Context, category, region string, limit int) ([]*domain.Supplier, error) {
	var out []*domain.Supplier
	for _, s := range r.suppliers {
		if len(out) >= limit {
			break
		}
		if category != "" && !strings.Contains(strings.ToLower(s.Categories), strings.ToLower(category)) {
			continue
		}
		if region != "" && s.Region != nil && *s.Region != region {
			continue
		}
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

// fakePublisher 记录发布的事件，可注入失败
type fakePublisher struct {
	events []domain.TenderRiskRecomputedEvent
	err    error
}

func (p *fakePublisher) PublishRiskRecomputed(_ context.Context, event domain.TenderRiskRecomputedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

// stubRule 固定权重的测试规则
type stubRule struct {
	code   string
	weight float64
}

func (r stubRule) Code() string { return r.code }

func (r stubRule) Evaluate(_ context.Context, _ *domain.Tender, _ domain.ComparableFinder) (*domain.RiskFlag, error) {
	return &domain.RiskFlag{Code: r.code, Description: r.code, Weight: r.weight}, nil
}

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func strptr(v string) *string { return &v }

func floatptr(v float64) *float64 { return &v }
