package domain

import "context"

// TenderListFilter 招标列表查询条件
type TenderListFilter struct {
	Category  string
	Platform  string
	RiskLevel RiskLevel
}

// TenderRepository 招标仓储接口
type TenderRepository interface {
	ComparableFinder

	Create(ctx context.Context, tender *Tender) error
	Get(ctx context.Context, id uint) (*Tender, error)
	List(ctx context.Context, filter TenderListFilter) ([]*Tender, error)

	// GetFlags 返回招标当前存储的风险标识
	GetFlags(ctx context.Context, tenderID uint) ([]*RiskFlag, error)
	// ReplaceFlags 整体替换招标的风险标识集合，需在事务内调用
	ReplaceFlags(ctx context.Context, tenderID uint, flags []*RiskFlag) error
	// UpdateRisk 持久化新的分数与等级
	UpdateRisk(ctx context.Context, tenderID uint, score float64, level RiskLevel) error

	// WithTx 在单个事务内执行 fn，任一失败整体回滚
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SupplierRepository 供应商仓储接口
type SupplierRepository interface {
	Create(ctx context.Context, supplier *Supplier) error
	// FindCandidates 按类别子串（不区分大小写）与地区（相同或未填写）
	// 筛选候选供应商，最多返回 limit 条
	FindCandidates(ctx context.Context, category, region string, limit int) ([]*Supplier, error)
}
