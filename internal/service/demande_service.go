package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/events"
	"github.com/LeZelote01/stock-manager/internal/model"
	"github.com/LeZelote01/stock-manager/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DemandeService interface {
	CreerDemande(ctx context.Context, req dto.CreerDemandeRequest) (*dto.DemandeResponse, error)
	ListerDemandes(ctx context.Context, filter dto.DemandeFilter) (*dto.DemandeListResponse, error)
	ObtenirDemande(ctx context.Context, id uuid.UUID) (*dto.DemandeResponse, error)
}

type demandeService struct {
	repo          repository.DemandeRepository
	materielRepo  repository.MaterielRepository
	personnelRepo repository.PersonnelRepository
	mouvementRepo repository.MouvementStockRepository
	emitter       events.Emitter
}

func NewDemandeService(
	repo repository.DemandeRepository,
	materielRepo repository.MaterielRepository,
	personnelRepo repository.PersonnelRepository,
	mouvementRepo repository.MouvementStockRepository,
	emitter events.Emitter,
) DemandeService {
	return &demandeService{
		repo:          repo,
		materielRepo:  materielRepo,
		personnelRepo: personnelRepo,
		mouvementRepo: mouvementRepo,
		emitter:       emitter,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CreerDemande ──────────────────────────────────────────────────────────────
// The withdrawal pipeline:
//  1. Resolve superviseur and both agents (404 on any miss, before anything else)
//  2. Filter quantities ≤ 0, resolve each remaining materiel
//  3. Compute the valuation at today's unit prices
//  4. TX: insert the approved demande + lines, atomically decrement each
//     material's stock, record one mouvement per line
//  5. Emit audit + notification events (best effort, never fails the demande)

func (s *demandeService) CreerDemande(ctx context.Context, req dto.CreerDemandeRequest) (*dto.DemandeResponse, error) {
	supID, err := uuid.Parse(req.SuperviseurID)
	if err != nil {
		return nil, fmt.Errorf("superviseur_id invalide: %w", err)
	}
	ag1ID, err := uuid.Parse(req.Agent1ID)
	if err != nil {
		return nil, fmt.Errorf("agent1_id invalide: %w", err)
	}
	ag2ID, err := uuid.Parse(req.Agent2ID)
	if err != nil {
		return nil, fmt.Errorf("agent2_id invalide: %w", err)
	}

	// 1. Resolve people. Agent1 == agent2 is tolerated: distinctness is an
	// unconfirmed business rule, so this layer does not enforce it.
	superviseur, err := s.personnelRepo.FindSuperviseurByID(ctx, supID)
	if err != nil {
		return nil, apierror.NewNotFound("superviseur", req.SuperviseurID)
	}
	agent1, err := s.personnelRepo.FindAgentByID(ctx, ag1ID)
	if err != nil {
		return nil, apierror.NewNotFound("agent", req.Agent1ID)
	}
	agent2, err := s.personnelRepo.FindAgentByID(ctx, ag2ID)
	if err != nil {
		return nil, apierror.NewNotFound("agent", req.Agent2ID)
	}

	// 2. Resolve materials. Lines with quantity ≤ 0 mean "not withdrawn" and
	// are silently dropped, not rejected. Ids are walked in sorted order so
	// row locks inside the TX are always taken in the same sequence.
	type resolvedLigne struct {
		materiel *model.Materiel
		quantite int
	}
	ids := make([]string, 0, len(req.Materiels))
	for id := range req.Materiels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var resolved []resolvedLigne
	for _, idStr := range ids {
		quantite := req.Materiels[idStr]
		mid, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("materiel id invalide: %w", err)
		}
		m, err := s.materielRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, apierror.NewNotFound("materiel", idStr)
		}
		if quantite <= 0 {
			continue
		}
		resolved = append(resolved, resolvedLigne{materiel: m, quantite: quantite})
	}

	// 3. Valuation at today's prices — frozen on each line so the demande
	// keeps its historical value if prices change later.
	valeurTotale := decimal.Zero
	lignes := make([]model.LigneDemande, 0, len(resolved))
	for _, r := range resolved {
		sousTotal := r.materiel.PrixUnitaire.Mul(decimal.NewFromInt(int64(r.quantite)))
		valeurTotale = valeurTotale.Add(sousTotal)
		lignes = append(lignes, model.LigneDemande{
			MaterielID:   r.materiel.ID,
			MaterielNom:  r.materiel.Nom,
			Quantite:     r.quantite,
			PrixUnitaire: r.materiel.PrixUnitaire,
			SousTotal:    sousTotal,
		})
	}

	demande := model.DemandeSortie{
		SuperviseurID:        superviseur.ID,
		SuperviseurNom:       superviseur.Nom,
		SuperviseurMatricule: superviseur.Matricule,
		Agent1ID:             agent1.ID,
		Agent1Nom:            agent1.Nom,
		Agent1Matricule:      agent1.Matricule,
		Agent2ID:             agent2.ID,
		Agent2Nom:            agent2.Nom,
		Agent2Matricule:      agent2.Matricule,
		Date:                 time.Now().UTC(),
		ValeurTotale:         valeurTotale,
		Status:               model.StatusApprouve,
		Signature:            req.Signature,
		Notes:                req.Notes,
		Lignes:               lignes,
	}

	// 4. Single TX: the demande record and every stock decrement commit or
	// roll back together. Each decrement is one atomic UPDATE, so concurrent
	// demandes on the same material cannot lose updates. No floor at zero:
	// a negative result is an alert condition, not a rejection.
	decrements := make([]map[string]interface{}, 0, len(resolved))
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &demande); err != nil {
			return err
		}
		for _, r := range resolved {
			apres, err := s.materielRepo.DecrementStockTx(tx, r.materiel.ID, r.quantite)
			if err != nil {
				return fmt.Errorf("décrément du stock de %s: %w", r.materiel.Nom, err)
			}
			ref := demande.ID
			mov := &model.MouvementStock{
				MaterielID:  r.materiel.ID,
				Type:        "sortie",
				Quantite:    -r.quantite,
				StockAvant:  apres + r.quantite,
				StockApres:  apres,
				Motif:       fmt.Sprintf("Demande de sortie %s", demande.ID),
				ReferenceID: &ref,
			}
			if err := s.mouvementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
			decrements = append(decrements, map[string]interface{}{
				"materiel_id":  r.materiel.ID.String(),
				"materiel_nom": r.materiel.Nom,
				"quantite":     r.quantite,
				"stock_apres":  apres,
			})
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 5. Fire-and-forget events: emission failures are logged, never returned.
	s.emitEvents(ctx, &demande, decrements)

	return demandeToResponse(&demande), nil
}

func (s *demandeService) emitEvents(ctx context.Context, d *model.DemandeSortie, decrements []map[string]interface{}) {
	if s.emitter == nil {
		return
	}
	audit := events.AuditEvent{
		Timestamp: time.Now().UTC(),
		Actor:     fmt.Sprintf("%s (%s)", d.SuperviseurNom, d.SuperviseurMatricule),
		Action:    events.ActionCreateDemande,
		Details: map[string]interface{}{
			"valeur_totale": d.ValeurTotale.String(),
			"decrements":    decrements,
		},
		AffectedEntity: "demande_sortie:" + d.ID.String(),
	}
	if err := s.emitter.EmitAudit(ctx, audit); err != nil {
		log.Error().Err(err).Str("demande_id", d.ID.String()).Msg("audit event emission failed")
	}

	notif := events.NotificationEvent{
		Message:   fmt.Sprintf("Demande de sortie approuvée pour %s", d.SuperviseurNom),
		Severity:  events.SeveritySuccess,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"demande_id":      d.ID.String(),
			"superviseur_nom": d.SuperviseurNom,
		},
	}
	if err := s.emitter.EmitNotification(ctx, notif); err != nil {
		log.Error().Err(err).Str("demande_id", d.ID.String()).Msg("notification event emission failed")
	}
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *demandeService) ListerDemandes(ctx context.Context, filter dto.DemandeFilter) (*dto.DemandeListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	demandes, total, err := s.repo.List(ctx, repository.DemandeFilter{Page: filter.Page, Limit: filter.Limit})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DemandeResponse, 0, len(demandes))
	for i := range demandes {
		items = append(items, *demandeToResponse(&demandes[i]))
	}
	return &dto.DemandeListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *demandeService) ObtenirDemande(ctx context.Context, id uuid.UUID) (*dto.DemandeResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("demande", id.String())
	}
	return demandeToResponse(d), nil
}

func demandeToResponse(d *model.DemandeSortie) *dto.DemandeResponse {
	lignes := make([]dto.LigneDemandeResponse, 0, len(d.Lignes))
	for _, l := range d.Lignes {
		lignes = append(lignes, dto.LigneDemandeResponse{
			MaterielID:   l.MaterielID.String(),
			MaterielNom:  l.MaterielNom,
			Quantite:     l.Quantite,
			PrixUnitaire: l.PrixUnitaire,
			SousTotal:    l.SousTotal,
		})
	}
	return &dto.DemandeResponse{
		ID:                   d.ID.String(),
		SuperviseurID:        d.SuperviseurID.String(),
		SuperviseurNom:       d.SuperviseurNom,
		SuperviseurMatricule: d.SuperviseurMatricule,
		Agent1ID:             d.Agent1ID.String(),
		Agent1Nom:            d.Agent1Nom,
		Agent1Matricule:      d.Agent1Matricule,
		Agent2ID:             d.Agent2ID.String(),
		Agent2Nom:            d.Agent2Nom,
		Agent2Matricule:      d.Agent2Matricule,
		Date:                 d.Date.Format(time.RFC3339),
		Lignes:               lignes,
		ValeurTotale:         d.ValeurTotale,
		Status:               d.Status,
		Signature:            d.Signature,
		Notes:                d.Notes,
	}
}
