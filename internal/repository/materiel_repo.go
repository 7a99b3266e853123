package repository

import (
	"context"

	"github.com/LeZelote01/stock-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaterielFilter defines filters for listing materials.
type MaterielFilter struct {
	Nom       string
	Categorie string
	Page      int
	Limit     int
}

// MaterielRepository defines the data access contract for materials.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type MaterielRepository interface {
	Create(ctx context.Context, m *model.Materiel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Materiel, error)
	List(ctx context.Context, filter MaterielFilter) ([]model.Materiel, int64, error)
	ListAll(ctx context.Context) ([]model.Materiel, error)
	Update(ctx context.Context, m *model.Materiel) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStockTx atomically subtracts quantite from the stored quantity
	// inside the given transaction. It is a single UPDATE with a SQL
	// expression — never a read-modify-write — so concurrent withdrawals
	// against the same material cannot lose updates. The new quantity is
	// returned via RETURNING so the caller can record the movement without a
	// second read.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, quantite int) (newQuantite int, err error)

	// AjusterStock applies an administrative delta outside any demande.
	AjusterStock(ctx context.Context, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type materielRepo struct{ db *gorm.DB }

func NewMaterielRepository(db *gorm.DB) MaterielRepository { return &materielRepo{db: db} }

func (r *materielRepo) Create(ctx context.Context, m *model.Materiel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materielRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Materiel, error) {
	var m model.Materiel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materielRepo) List(ctx context.Context, filter MaterielFilter) ([]model.Materiel, int64, error) {
	var materiels []model.Materiel
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Materiel{})
	if filter.Nom != "" {
		q = q.Where("nom ILIKE ?", "%"+filter.Nom+"%")
	}
	if filter.Categorie != "" {
		q = q.Where("categorie = ?", filter.Categorie)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 1000 {
		limit = 1000
	}
	offset := (page - 1) * limit
	err := q.Order("nom ASC").Limit(limit).Offset(offset).Find(&materiels).Error
	return materiels, total, err
}

func (r *materielRepo) ListAll(ctx context.Context) ([]model.Materiel, error) {
	var materiels []model.Materiel
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&materiels).Error
	return materiels, err
}

func (r *materielRepo) Update(ctx context.Context, m *model.Materiel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materielRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Materiel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *materielRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, quantite int) (int, error) {
	var m model.Materiel
	res := tx.Model(&m).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "quantite"}}}).
		Where("id = ?", id).
		Update("quantite", gorm.Expr("quantite - ?", quantite))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return m.Quantite, nil
}

func (r *materielRepo) AjusterStock(ctx context.Context, id uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).Model(&model.Materiel{}).
		Where("id = ?", id).
		Update("quantite", gorm.Expr("quantite + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *materielRepo) DB() *gorm.DB { return r.db }
