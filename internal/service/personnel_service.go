package service

import (
	"context"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/model"
	"github.com/LeZelote01/stock-manager/internal/repository"

	"github.com/google/uuid"
)

// PersonnelService manages the three personnel reference collections the
// withdrawal validator resolves against.
type PersonnelService interface {
	CreerAgent(ctx context.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	ListerAgents(ctx context.Context) ([]dto.PersonnelResponse, error)
	ModifierAgent(ctx context.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	SupprimerAgent(ctx context.Context, id uuid.UUID) error

	CreerSuperviseur(ctx context.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	ListerSuperviseurs(ctx context.Context) ([]dto.PersonnelResponse, error)
	ModifierSuperviseur(ctx context.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	SupprimerSuperviseur(ctx context.Context, id uuid.UUID) error

	CreerChefSection(ctx context.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	ListerChefsSection(ctx context.Context) ([]dto.PersonnelResponse, error)
	ModifierChefSection(ctx context.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	SupprimerChefSection(ctx context.Context, id uuid.UUID) error
}

type personnelService struct {
	repo repository.PersonnelRepository
}

func NewPersonnelService(repo repository.PersonnelRepository) PersonnelService {
	return &personnelService{repo: repo}
}

// ── Agents ────────────────────────────────────────────────────────────────────

func (s *personnelService) CreerAgent(ctx context.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
	a := &model.Agent{Nom: req.Nom, Matricule: req.Matricule}
	if err := s.repo.CreateAgent(ctx, a); err != nil {
		return nil, err
	}
	return &dto.PersonnelResponse{ID: a.ID.String(), Nom: a.Nom, Matricule: a.Matricule}, nil
}

func (s *personnelService) ListerAgents(ctx context.Context) ([]dto.PersonnelResponse, error) {
	agents, err := s.repo.ListAgents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonnelResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, dto.PersonnelResponse{ID: a.ID.String(), Nom: a.Nom, Matricule: a.Matricule})
	}
	return out, nil
}

func (s *personnelService) ModifierAgent(ctx context.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
	a, err := s.repo.FindAgentByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("agent", id.String())
	}
	a.Nom = req.Nom
	a.Matricule = req.Matricule
	if err := s.repo.UpdateAgent(ctx, a); err != nil {
		return nil, err
	}
	return &dto.PersonnelResponse{ID: a.ID.String(), Nom: a.Nom, Matricule: a.Matricule}, nil
}

func (s *personnelService) SupprimerAgent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAgent(ctx, id); err != nil {
		return apierror.NewNotFound("agent", id.String())
	}
	return nil
}

// ── Superviseurs ──────────────────────────────────────────────────────────────

func (s *personnelService) CreerSuperviseur(ctx context.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
	sup := &model.Superviseur{Nom: req.Nom, Matricule: req.Matricule}
	if err := s.repo.CreateSuperviseur(ctx, sup); err != nil {
		return nil, err
	}
	return &dto.PersonnelResponse{ID: sup.ID.String(), Nom: sup.Nom, Matricule: sup.Matricule}, nil
}

func (s *personnelService) ListerSuperviseurs(ctx context.Context) ([]dto.PersonnelResponse, error) {
	sups, err := s.repo.ListSuperviseurs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonnelResponse, 0, len(sups))
	for _, sup := range sups {
		out = append(out, dto.PersonnelResponse{ID: sup.ID.String(), Nom: sup.Nom, Matricule: sup.Matricule})
	}
	return out, nil
}

func (s *personnelService) ModifierSuperviseur(ctx context.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
	sup, err := s.repo.FindSuperviseurByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("superviseur", id.String())
	}
	sup.Nom = req.Nom
	sup.Matricule = req.Matricule
	if err := s.repo.UpdateSuperviseur(ctx, sup); err != nil {
		return nil, err
	}
	return &dto.PersonnelResponse{ID: sup.ID.String(), Nom: sup.Nom, Matricule: sup.Matricule}, nil
}

func (s *personnelService) SupprimerSuperviseur(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteSuperviseur(ctx, id); err != nil {
		return apierror.NewNotFound("superviseur", id.String())
	}
	return nil
}

// ── Chefs de section ──────────────────────────────────────────────────────────

func (s *personnelService) CreerChefSection(ctx context.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
	c := &model.ChefSection{Nom: req.Nom, Matricule: req.Matricule}
	if err := s.repo.CreateChefSection(ctx, c); err != nil {
		return nil, err
	}
	return &dto.PersonnelResponse{ID: c.ID.String(), Nom: c.Nom, Matricule: c.Matricule}, nil
}

func (s *personnelService) ListerChefsSection(ctx context.Context) ([]dto.PersonnelResponse, error) {
	chefs, err := s.repo.ListChefsSection(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PersonnelResponse, 0, len(chefs))
	for _, c := range chefs {
		out = append(out, dto.PersonnelResponse{ID: c.ID.String(), Nom: c.Nom, Matricule: c.Matricule})
	}
	return out, nil
}

func (s *personnelService) ModifierChefSection(ctx context.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
	c, err := s.repo.FindChefSectionByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("chef de section", id.String())
	}
	c.Nom = req.Nom
	c.Matricule = req.Matricule
	if err := s.repo.UpdateChefSection(ctx, c); err != nil {
		return nil, err
	}
	return &dto.PersonnelResponse{ID: c.ID.String(), Nom: c.Nom, Matricule: c.Matricule}, nil
}

func (s *personnelService) SupprimerChefSection(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteChefSection(ctx, id); err != nil {
		return apierror.NewNotFound("chef de section", id.String())
	}
	return nil
}
