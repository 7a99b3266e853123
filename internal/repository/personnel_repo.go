package repository

import (
	"context"

	"github.com/LeZelote01/stock-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonnelRepository covers the three personnel reference collections. The
// demande validator only needs the Find methods; the CRUD endpoints use the
// rest.
type PersonnelRepository interface {
	FindAgentByID(ctx context.Context, id uuid.UUID) (*model.Agent, error)
	FindSuperviseurByID(ctx context.Context, id uuid.UUID) (*model.Superviseur, error)
	FindChefSectionByID(ctx context.Context, id uuid.UUID) (*model.ChefSection, error)

	CreateAgent(ctx context.Context, a *model.Agent) error
	ListAgents(ctx context.Context) ([]model.Agent, error)
	UpdateAgent(ctx context.Context, a *model.Agent) error
	DeleteAgent(ctx context.Context, id uuid.UUID) error

	CreateSuperviseur(ctx context.Context, s *model.Superviseur) error
	ListSuperviseurs(ctx context.Context) ([]model.Superviseur, error)
	UpdateSuperviseur(ctx context.Context, s *model.Superviseur) error
	DeleteSuperviseur(ctx context.Context, id uuid.UUID) error

	CreateChefSection(ctx context.Context, c *model.ChefSection) error
	ListChefsSection(ctx context.Context) ([]model.ChefSection, error)
	UpdateChefSection(ctx context.Context, c *model.ChefSection) error
	DeleteChefSection(ctx context.Context, id uuid.UUID) error
}

type personnelRepo struct{ db *gorm.DB }

func NewPersonnelRepository(db *gorm.DB) PersonnelRepository { return &personnelRepo{db: db} }

func (r *personnelRepo) FindAgentByID(ctx context.Context, id uuid.UUID) (*model.Agent, error) {
	var a model.Agent
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *personnelRepo) FindSuperviseurByID(ctx context.Context, id uuid.UUID) (*model.Superviseur, error) {
	var s model.Superviseur
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *personnelRepo) FindChefSectionByID(ctx context.Context, id uuid.UUID) (*model.ChefSection, error) {
	var c model.ChefSection
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *personnelRepo) CreateAgent(ctx context.Context, a *model.Agent) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *personnelRepo) ListAgents(ctx context.Context) ([]model.Agent, error) {
	var agents []model.Agent
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&agents).Error
	return agents, err
}

func (r *personnelRepo) UpdateAgent(ctx context.Context, a *model.Agent) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *personnelRepo) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &model.Agent{}, id)
}

func (r *personnelRepo) CreateSuperviseur(ctx context.Context, s *model.Superviseur) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *personnelRepo) ListSuperviseurs(ctx context.Context) ([]model.Superviseur, error) {
	var sups []model.Superviseur
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&sups).Error
	return sups, err
}

func (r *personnelRepo) UpdateSuperviseur(ctx context.Context, s *model.Superviseur) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *personnelRepo) DeleteSuperviseur(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &model.Superviseur{}, id)
}

func (r *personnelRepo) CreateChefSection(ctx context.Context, c *model.ChefSection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *personnelRepo) ListChefsSection(ctx context.Context) ([]model.ChefSection, error) {
	var chefs []model.ChefSection
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&chefs).Error
	return chefs, err
}

func (r *personnelRepo) UpdateChefSection(ctx context.Context, c *model.ChefSection) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *personnelRepo) DeleteChefSection(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &model.ChefSection{}, id)
}

func deleteByID(db *gorm.DB, entity interface{}, id uuid.UUID) error {
	res := db.Delete(entity, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
