package repository

import (
	"context"
	"time"

	"github.com/LeZelote01/stock-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ObservationRow is one exploded demande line used as forecasting input:
// the date the withdrawal happened, the material, and the quantity taken.
type ObservationRow struct {
	Date       time.Time
	MaterielID uuid.UUID
	Quantite   int
}

type DemandeFilter struct {
	Page  int
	Limit int
}

type DemandeRepository interface {
	// CreateTx inserts the demande and its lines inside the ledger transaction.
	CreateTx(tx *gorm.DB, d *model.DemandeSortie) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DemandeSortie, error)
	// List returns demandes newest first.
	List(ctx context.Context, filter DemandeFilter) ([]model.DemandeSortie, int64, error)

	// ListObservations returns every demande line, oldest first, as
	// forecasting observations.
	ListObservations(ctx context.Context) ([]ObservationRow, error)
	// RecentObservations returns the most recent limit lines for one
	// material, newest first.
	RecentObservations(ctx context.Context, materielID uuid.UUID, limit int) ([]ObservationRow, error)

	DB() *gorm.DB
}

type demandeRepo struct{ db *gorm.DB }

func NewDemandeRepository(db *gorm.DB) DemandeRepository { return &demandeRepo{db: db} }

func (r *demandeRepo) CreateTx(tx *gorm.DB, d *model.DemandeSortie) error {
	return tx.Create(d).Error
}

func (r *demandeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DemandeSortie, error) {
	var d model.DemandeSortie
	err := r.db.WithContext(ctx).Preload("Lignes").First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *demandeRepo) List(ctx context.Context, filter DemandeFilter) ([]model.DemandeSortie, int64, error) {
	var demandes []model.DemandeSortie
	var total int64

	q := r.db.WithContext(ctx).Model(&model.DemandeSortie{})
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
	err := q.Preload("Lignes").Order("date DESC").Limit(limit).Offset(offset).Find(&demandes).Error
	return demandes, total, err
}

func (r *demandeRepo) ListObservations(ctx context.Context) ([]ObservationRow, error) {
	var rows []ObservationRow
	err := r.db.WithContext(ctx).
		Table("lignes_demande").
		Select("demandes_sortie.date AS date, lignes_demande.materiel_id AS materiel_id, lignes_demande.quantite AS quantite").
		Joins("JOIN demandes_sortie ON demandes_sortie.id = lignes_demande.demande_id").
		Order("demandes_sortie.date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *demandeRepo) RecentObservations(ctx context.Context, materielID uuid.UUID, limit int) ([]ObservationRow, error) {
	var rows []ObservationRow
	err := r.db.WithContext(ctx).
		Table("lignes_demande").
		Select("demandes_sortie.date AS date, lignes_demande.materiel_id AS materiel_id, lignes_demande.quantite AS quantite").
		Joins("JOIN demandes_sortie ON demandes_sortie.id = lignes_demande.demande_id").
		Where("lignes_demande.materiel_id = ?", materielID).
		Order("demandes_sortie.date DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *demandeRepo) DB() *gorm.DB { return r.db }
