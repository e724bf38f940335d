package application

import (
	"context"

	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

// TenderQuery 处理所有招标相关的查询操作（Queries）。
type TenderQuery struct {
	tenders domain.TenderRepository
}

// NewTenderQuery 构造函数。
func NewTenderQuery(tenders domain.TenderRepository) *TenderQuery {
	return &TenderQuery{tenders: tenders}
}

// ListTenders 按类别、平台、风险等级过滤，按创建时间倒序
func (q *TenderQuery) ListTenders(ctx context.Context, filter domain.TenderListFilter) ([]TenderDTO, error) {
	tenders, err := q.tenders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]TenderDTO, 0, len(tenders))
	for _, t := range tenders {
		dtos = append(dtos, toTenderDTO(t))
	}
	return dtos, nil
}

// GetTender 按 ID 获取招标。不存在返回 ErrTenderNotFound。
func (q *TenderQuery) GetTender(ctx context.Context, id uint) (*TenderDTO, error) {
	tender, err := q.tenders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, domain.ErrTenderNotFound
	}
	dto := toTenderDTO(tender)
	return &dto, nil
}
