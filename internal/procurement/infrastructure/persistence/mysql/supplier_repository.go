package mysql

import (
	"context"
	"strings"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 创建并返回一个新的 SupplierRepository 实例。
func NewSupplierRepository(db *gorm.DB) domain.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	model := toSupplierModel(supplier)
	if err := r.getDB(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	supplier.ID = model.ID
	supplier.CreatedAt = model.CreatedAt
	supplier.UpdatedAt = model.UpdatedAt
	return nil
}

// FindCandidates 类别按不区分大小写的子串匹配；地区要求相同或未填写。
// 条件仅在对应入参非空时生效，limit 在评分前截断。
func (r *supplierRepository) FindCandidates(ctx context.Context, category, region string, limit int) ([]*domain.Supplier, error) {
	query := r.getDB(ctx).WithContext(ctx)
	if category != "" {
		query = query.Where("LOWER(categories) LIKE ?", "%"+strings.ToLower(category)+"%")
	}
	if region != "" {
		query = query.Where("region = ? OR region IS NULL", region)
	}

	var models []*SupplierModel
	if err := query.Order("id").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	suppliers := make([]*domain.Supplier, 0, len(models))
	for _, m := range models {
		suppliers = append(suppliers, toSupplier(m))
	}
	return suppliers, nil
}

func (r *supplierRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
