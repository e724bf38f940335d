package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
	"gorm.io/gorm"
)

type tenderRepository struct {
	db *gorm.DB
}

// NewTenderRepository 创建并返回一个新的 TenderRepository 实例。
func NewTenderRepository(db *gorm.DB) domain.TenderRepository {
	return &tenderRepository{db: db}
}

func (r *tenderRepository) Create(ctx context.Context, tender *domain.Tender) error {
	model := toTenderModel(tender)
	if model.RiskLevel == "" {
		model.RiskLevel = string(domain.RiskLevelLow)
	}
	if err := r.getDB(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	tender.ID = model.ID
	tender.RiskLevel = domain.RiskLevel(model.RiskLevel)
	tender.CreatedAt = model.CreatedAt
	tender.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *tenderRepository) Get(ctx context.Context, id uint) (*domain.Tender, error) {
	var model TenderModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toTender(&model), nil
}

func (r *tenderRepository) List(ctx context.Context, filter domain.TenderListFilter) ([]*domain.Tender, error) {
	query := r.getDB(ctx).WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.RiskLevel != "" {
		query = query.Where("risk_level = ?", string(filter.RiskLevel))
	}

	var models []*TenderModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	tenders := make([]*domain.Tender, 0, len(models))
	for _, m := range models {
		tenders = append(tenders, toTender(m))
	}
	return tenders, nil
}

func (r *tenderRepository) FindComparables(ctx context.Context, category string, excludeID uint) ([]*domain.Tender, error) {
	var models []*TenderModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("category = ? AND id <> ? AND price_amount IS NOT NULL", category, excludeID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	tenders := make([]*domain.Tender, 0, len(models))
	for _, m := range models {
		tenders = append(tenders, toTender(m))
	}
	return tenders, nil
}

func (r *tenderRepository) GetFlags(ctx context.Context, tenderID uint) ([]*domain.RiskFlag, error) {
	var models []*RiskFlagModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("tender_id = ?", tenderID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	flags := make([]*domain.RiskFlag, 0, len(models))
	for _, m := range models {
		flags = append(flags, toRiskFlag(m))
	}
	return flags, nil
}

// ReplaceFlags 先删后插。调用方必须通过 WithTx 包裹，
// 保证读取方看不到空集或新旧混杂的标识集合。
func (r *tenderRepository) ReplaceFlags(ctx context.Context, tenderID uint, flags []*domain.RiskFlag) error {
	db := r.getDB(ctx).WithContext(ctx)

	if err := db.Where("tender_id = ?", tenderID).Delete(&RiskFlagModel{}).Error; err != nil {
		return err
	}
	if len(flags) == 0 {
		return nil
	}

	models := make([]*RiskFlagModel, 0, len(flags))
	for _, f := range flags {
		m := toRiskFlagModel(f)
		m.ID = 0
		m.TenderID = tenderID
		models = append(models, m)
	}
	if err := db.Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		flags[i].ID = m.ID
		flags[i].TenderID = m.TenderID
	}
	return nil
}

func (r *tenderRepository) UpdateRisk(ctx context.Context, tenderID uint, score float64, level domain.RiskLevel) error {
	return r.getDB(ctx).WithContext(ctx).
		Model(&TenderModel{}).
		Where("id = ?", tenderID).
		Updates(map[string]any{
			"risk_score": score,
			"risk_level": string(level),
		}).Error
}

func (r *tenderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextx.WithTx(ctx, tx)
		return fn(txCtx)
	})
}

func (r *tenderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
