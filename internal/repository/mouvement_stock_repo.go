package repository

import (
	"context"

	"github.com/LeZelote01/stock-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MouvementStockFilter defines filters for listing stock movements.
type MouvementStockFilter struct {
	MaterielID *uuid.UUID
	Type       string
	Page       int
	Limit      int
}

type MouvementStockRepository interface {
	Create(ctx context.Context, m *model.MouvementStock) error
	CreateTx(tx *gorm.DB, m *model.MouvementStock) error
	List(ctx context.Context, filter MouvementStockFilter) ([]model.MouvementStock, int64, error)
}

type mouvementStockRepo struct{ db *gorm.DB }

func NewMouvementStockRepository(db *gorm.DB) MouvementStockRepository {
	return &mouvementStockRepo{db: db}
}

func (r *mouvementStockRepo) Create(ctx context.Context, m *model.MouvementStock) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mouvementStockRepo) CreateTx(tx *gorm.DB, m *model.MouvementStock) error {
	return tx.Create(m).Error
}

func (r *mouvementStockRepo) List(ctx context.Context, filter MouvementStockFilter) ([]model.MouvementStock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MouvementStock{}).
		Preload("Materiel")
	if filter.MaterielID != nil {
		q = q.Where("materiel_id = ?", *filter.MaterielID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var mouvements []model.MouvementStock
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&mouvements).Error
	return mouvements, total, err
}
