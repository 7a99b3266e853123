package service

import (
	"context"
	"time"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/model"
	"github.com/LeZelote01/stock-manager/internal/repository"

	"github.com/google/uuid"
)

type MaterielService interface {
	Creer(ctx context.Context, req dto.CreerMaterielRequest) (*dto.MaterielResponse, error)
	Lister(ctx context.Context, filter repository.MaterielFilter) ([]dto.MaterielResponse, error)
	ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.MaterielResponse, error)
	Modifier(ctx context.Context, id uuid.UUID, req dto.ModifierMaterielRequest) (*dto.MaterielResponse, error)
	Supprimer(ctx context.Context, id uuid.UUID) error
	// AjusterStock applies an administrative quantity delta and journals it.
	AjusterStock(ctx context.Context, id uuid.UUID, delta int, motif string) (*dto.MaterielResponse, error)
}

type materielService struct {
	repo          repository.MaterielRepository
	mouvementRepo repository.MouvementStockRepository
}

func NewMaterielService(repo repository.MaterielRepository, mouvementRepo repository.MouvementStockRepository) MaterielService {
	return &materielService{repo: repo, mouvementRepo: mouvementRepo}
}

func (s *materielService) Creer(ctx context.Context, req dto.CreerMaterielRequest) (*dto.MaterielResponse, error) {
	m := &model.Materiel{
		Nom:           req.Nom,
		Quantite:      req.Quantite,
		PrixUnitaire:  req.PrixUnitaire,
		SeuilAlerte:   model.DefaultSeuilAlerte,
		SeuilCritique: model.DefaultSeuilCritique,
		Categorie:     req.Categorie,
		Emplacement:   req.Emplacement,
	}
	if req.SeuilAlerte != nil {
		m.SeuilAlerte = *req.SeuilAlerte
	}
	if req.SeuilCritique != nil {
		m.SeuilCritique = *req.SeuilCritique
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return materielToResponse(m), nil
}

func (s *materielService) Lister(ctx context.Context, filter repository.MaterielFilter) ([]dto.MaterielResponse, error) {
	materiels, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterielResponse, 0, len(materiels))
	for i := range materiels {
		out = append(out, *materielToResponse(&materiels[i]))
	}
	return out, nil
}

func (s *materielService) ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.MaterielResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("materiel", id.String())
	}
	return materielToResponse(m), nil
}

func (s *materielService) Modifier(ctx context.Context, id uuid.UUID, req dto.ModifierMaterielRequest) (*dto.MaterielResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("materiel", id.String())
	}
	if req.Nom != nil {
		m.Nom = *req.Nom
	}
	if req.Quantite != nil {
		m.Quantite = *req.Quantite
	}
	if req.PrixUnitaire != nil {
		m.PrixUnitaire = *req.PrixUnitaire
	}
	if req.SeuilAlerte != nil {
		m.SeuilAlerte = *req.SeuilAlerte
	}
	if req.SeuilCritique != nil {
		m.SeuilCritique = *req.SeuilCritique
	}
	if req.Categorie != nil {
		m.Categorie = *req.Categorie
	}
	if req.Emplacement != nil {
		m.Emplacement = *req.Emplacement
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return materielToResponse(m), nil
}

func (s *materielService) Supprimer(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.NewNotFound("materiel", id.String())
	}
	return nil
}

func (s *materielService) AjusterStock(ctx context.Context, id uuid.UUID, delta int, motif string) (*dto.MaterielResponse, error) {
	avant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("materiel", id.String())
	}
	if err := s.repo.AjusterStock(ctx, id, delta); err != nil {
		return nil, err
	}

	mov := &model.MouvementStock{
		MaterielID: id,
		Type:       "ajustement",
		Quantite:   delta,
		StockAvant: avant.Quantite,
		StockApres: avant.Quantite + delta,
		Motif:      motif,
	}
	if err := s.mouvementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return materielToResponse(m), nil
}

func materielToResponse(m *model.Materiel) *dto.MaterielResponse {
	return &dto.MaterielResponse{
		ID:            m.ID.String(),
		Nom:           m.Nom,
		Quantite:      m.Quantite,
		PrixUnitaire:  m.PrixUnitaire,
		SeuilAlerte:   m.SeuilAlerte,
		SeuilCritique: m.SeuilCritique,
		Categorie:     m.Categorie,
		Emplacement:   m.Emplacement,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
