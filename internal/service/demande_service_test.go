package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/events"
	"github.com/LeZelote01/stock-manager/internal/model"
	"github.com/LeZelote01/stock-manager/internal/repository"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory stubs ──────────────────────────────────────────────────────────

type stubMaterielRepo struct {
	mu        sync.Mutex
	materiels map[uuid.UUID]*model.Materiel
}

func newStubMaterielRepo() *stubMaterielRepo {
	return &stubMaterielRepo{materiels: make(map[uuid.UUID]*model.Materiel)}
}

func (r *stubMaterielRepo) Create(_ context.Context, m *model.Materiel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.materiels[m.ID] = m
	return nil
}

func (r *stubMaterielRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Materiel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materiels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMaterielRepo) List(_ context.Context, _ repository.MaterielFilter) ([]model.Materiel, int64, error) {
	var result []model.Materiel
	for _, m := range r.materiels {
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

func (r *stubMaterielRepo) ListAll(_ context.Context) ([]model.Materiel, error) {
	var result []model.Materiel
	for _, m := range r.materiels {
		result = append(result, *m)
	}
	return result, nil
}

func (r *stubMaterielRepo) Update(_ context.Context, m *model.Materiel) error {
	r.materiels[m.ID] = m
	return nil
}

func (r *stubMaterielRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.materiels[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.materiels, id)
	return nil
}

func (r *stubMaterielRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, quantite int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materiels[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	m.Quantite -= quantite
	return m.Quantite, nil
}

func (r *stubMaterielRepo) AjusterStock(_ context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materiels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Quantite += delta
	return nil
}

func (r *stubMaterielRepo) DB() *gorm.DB { return nil }

var _ repository.MaterielRepository = (*stubMaterielRepo)(nil)

type stubDemandeRepo struct {
	mu       sync.Mutex
	demandes map[uuid.UUID]*model.DemandeSortie
	rows     []repository.ObservationRow
}

func newStubDemandeRepo() *stubDemandeRepo {
	return &stubDemandeRepo{demandes: make(map[uuid.UUID]*model.DemandeSortie)}
}

func (r *stubDemandeRepo) CreateTx(_ *gorm.DB, d *model.DemandeSortie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.demandes[d.ID] = &cp
	for _, l := range d.Lignes {
		r.rows = append(r.rows, repository.ObservationRow{
			Date:       d.Date,
			MaterielID: l.MaterielID,
			Quantite:   l.Quantite,
		})
	}
	return nil
}

func (r *stubDemandeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DemandeSortie, error) {
	d, ok := r.demandes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDemandeRepo) List(_ context.Context, _ repository.DemandeFilter) ([]model.DemandeSortie, int64, error) {
	var result []model.DemandeSortie
	for _, d := range r.demandes {
		result = append(result, *d)
	}
	return result, int64(len(result)), nil
}

func (r *stubDemandeRepo) ListObservations(_ context.Context) ([]repository.ObservationRow, error) {
	return r.rows, nil
}

func (r *stubDemandeRepo) RecentObservations(_ context.Context, materielID uuid.UUID, limit int) ([]repository.ObservationRow, error) {
	var result []repository.ObservationRow
	for i := len(r.rows) - 1; i >= 0 && len(result) < limit; i-- {
		if r.rows[i].MaterielID == materielID {
			result = append(result, r.rows[i])
		}
	}
	return result, nil
}

func (r *stubDemandeRepo) DB() *gorm.DB { return nil }

var _ repository.DemandeRepository = (*stubDemandeRepo)(nil)

type stubPersonnelRepo struct {
	agents       map[uuid.UUID]*model.Agent
	superviseurs map[uuid.UUID]*model.Superviseur
	chefs        map[uuid.UUID]*model.ChefSection
}

func newStubPersonnelRepo() *stubPersonnelRepo {
	return &stubPersonnelRepo{
		agents:       make(map[uuid.UUID]*model.Agent),
		superviseurs: make(map[uuid.UUID]*model.Superviseur),
		chefs:        make(map[uuid.UUID]*model.ChefSection),
	}
}

func (r *stubPersonnelRepo) FindAgentByID(_ context.Context, id uuid.UUID) (*model.Agent, error) {
	a, ok := r.agents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubPersonnelRepo) FindSuperviseurByID(_ context.Context, id uuid.UUID) (*model.Superviseur, error) {
	s, ok := r.superviseurs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubPersonnelRepo) FindChefSectionByID(_ context.Context, id uuid.UUID) (*model.ChefSection, error) {
	c, ok := r.chefs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubPersonnelRepo) CreateAgent(_ context.Context, a *model.Agent) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.agents[a.ID] = a
	return nil
}

func (r *stubPersonnelRepo) ListAgents(_ context.Context) ([]model.Agent, error) {
	var result []model.Agent
	for _, a := range r.agents {
		result = append(result, *a)
	}
	return result, nil
}

func (r *stubPersonnelRepo) UpdateAgent(_ context.Context, a *model.Agent) error {
	r.agents[a.ID] = a
	return nil
}

func (r *stubPersonnelRepo) DeleteAgent(_ context.Context, id uuid.UUID) error {
	delete(r.agents, id)
	return nil
}

func (r *stubPersonnelRepo) CreateSuperviseur(_ context.Context, s *model.Superviseur) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.superviseurs[s.ID] = s
	return nil
}

func (r *stubPersonnelRepo) ListSuperviseurs(_ context.Context) ([]model.Superviseur, error) {
	var result []model.Superviseur
	for _, s := range r.superviseurs {
		result = append(result, *s)
	}
	return result, nil
}

func (r *stubPersonnelRepo) UpdateSuperviseur(_ context.Context, s *model.Superviseur) error {
	r.superviseurs[s.ID] = s
	return nil
}

func (r *stubPersonnelRepo) DeleteSuperviseur(_ context.Context, id uuid.UUID) error {
	delete(r.superviseurs, id)
	return nil
}

func (r *stubPersonnelRepo) CreateChefSection(_ context.Context, c *model.ChefSection) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.chefs[c.ID] = c
	return nil
}

func (r *stubPersonnelRepo) ListChefsSection(_ context.Context) ([]model.ChefSection, error) {
	var result []model.ChefSection
	for _, c := range r.chefs {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubPersonnelRepo) UpdateChefSection(_ context.Context, c *model.ChefSection) error {
	r.chefs[c.ID] = c
	return nil
}

func (r *stubPersonnelRepo) DeleteChefSection(_ context.Context, id uuid.UUID) error {
	delete(r.chefs, id)
	return nil
}

var _ repository.PersonnelRepository = (*stubPersonnelRepo)(nil)

type stubMouvementRepo struct {
	mu         sync.Mutex
	mouvements []model.MouvementStock
}

func (r *stubMouvementRepo) Create(_ context.Context, m *model.MouvementStock) error {
	return r.CreateTx(nil, m)
}

func (r *stubMouvementRepo) CreateTx(_ *gorm.DB, m *model.MouvementStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mouvements = append(r.mouvements, *m)
	return nil
}

func (r *stubMouvementRepo) List(_ context.Context, _ repository.MouvementStockFilter) ([]model.MouvementStock, int64, error) {
	return r.mouvements, int64(len(r.mouvements)), nil
}

var _ repository.MouvementStockRepository = (*stubMouvementRepo)(nil)

type stubEmitter struct {
	mu     sync.Mutex
	audits []events.AuditEvent
	notifs []events.NotificationEvent
	fail   bool
}

func (e *stubEmitter) EmitAudit(_ context.Context, ev events.AuditEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return errors.New("queue unavailable")
	}
	e.audits = append(e.audits, ev)
	return nil
}

func (e *stubEmitter) EmitNotification(_ context.Context, ev events.NotificationEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail {
		return errors.New("queue unavailable")
	}
	e.notifs = append(e.notifs, ev)
	return nil
}

var _ events.Emitter = (*stubEmitter)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

type demandeFixture struct {
	materielRepo  *stubMaterielRepo
	demandeRepo   *stubDemandeRepo
	personnelRepo *stubPersonnelRepo
	mouvementRepo *stubMouvementRepo
	emitter       *stubEmitter
	svc           service.DemandeService

	superviseur *model.Superviseur
	agent1      *model.Agent
	agent2      *model.Agent
}

func newDemandeFixture(t *testing.T) *demandeFixture {
	t.Helper()
	f := &demandeFixture{
		materielRepo:  newStubMaterielRepo(),
		demandeRepo:   newStubDemandeRepo(),
		personnelRepo: newStubPersonnelRepo(),
		mouvementRepo: &stubMouvementRepo{},
		emitter:       &stubEmitter{},
	}
	f.svc = service.NewDemandeService(f.demandeRepo, f.materielRepo, f.personnelRepo, f.mouvementRepo, f.emitter)

	f.superviseur = &model.Superviseur{ID: uuid.New(), Nom: "Konan Yao", Matricule: "SUP-001"}
	f.agent1 = &model.Agent{ID: uuid.New(), Nom: "Kouassi Jean", Matricule: "AGT-001"}
	f.agent2 = &model.Agent{ID: uuid.New(), Nom: "Traoré Issa", Matricule: "AGT-002"}
	f.personnelRepo.superviseurs[f.superviseur.ID] = f.superviseur
	f.personnelRepo.agents[f.agent1.ID] = f.agent1
	f.personnelRepo.agents[f.agent2.ID] = f.agent2
	return f
}

func (f *demandeFixture) seedMateriel(nom string, quantite int, prix float64) *model.Materiel {
	m := &model.Materiel{
		ID:            uuid.New(),
		Nom:           nom,
		Quantite:      quantite,
		PrixUnitaire:  decimal.NewFromFloat(prix),
		SeuilAlerte:   10,
		SeuilCritique: 5,
	}
	f.materielRepo.materiels[m.ID] = m
	return m
}

func (f *demandeFixture) request(materiels map[string]int) dto.CreerDemandeRequest {
	return dto.CreerDemandeRequest{
		SuperviseurID: f.superviseur.ID.String(),
		Agent1ID:      f.agent1.ID.String(),
		Agent2ID:      f.agent2.ID.String(),
		Materiels:     materiels,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreerDemandeDecrementeEtValorise(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque de chantier", 40, 12.50)
	gants := f.seedMateriel("Gants de protection", 120, 3.75)

	resp, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		casque.ID.String(): 4,
		gants.ID.String():  10,
	}))
	require.NoError(t, err)

	// 4×12.50 + 10×3.75 = 87.50
	assert.Equal(t, "87.5", resp.ValeurTotale.String())
	assert.Equal(t, model.StatusApprouve, resp.Status)
	assert.Len(t, resp.Lignes, 2)

	// Conservation: stock after == stock before − requested
	assert.Equal(t, 36, f.materielRepo.materiels[casque.ID].Quantite)
	assert.Equal(t, 110, f.materielRepo.materiels[gants.ID].Quantite)

	// One mouvement per line, negative quantity, before/after coherent
	require.Len(t, f.mouvementRepo.mouvements, 2)
	for _, mov := range f.mouvementRepo.mouvements {
		assert.Equal(t, "sortie", mov.Type)
		assert.Negative(t, mov.Quantite)
		assert.Equal(t, mov.StockAvant+mov.Quantite, mov.StockApres)
	}
}

func TestCreerDemandeFigeLePrixSurLaLigne(t *testing.T) {
	f := newDemandeFixture(t)
	cable := f.seedMateriel("Câble électrique", 20, 45.00)

	resp, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		cable.ID.String(): 2,
	}))
	require.NoError(t, err)

	// Price change after the fact must not alter the recorded line
	cable.PrixUnitaire = decimal.NewFromFloat(60.00)
	f.materielRepo.materiels[cable.ID] = cable

	d, err := f.svc.ObtenirDemande(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "45", d.Lignes[0].PrixUnitaire.String())
	assert.Equal(t, "90", d.ValeurTotale.String())
}

func TestCreerDemandeIgnoreLesQuantitesNulles(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 10, 5.00)
	gants := f.seedMateriel("Gants", 10, 2.00)

	resp, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		casque.ID.String(): 3,
		gants.ID.String():  0,
	}))
	require.NoError(t, err)

	assert.Len(t, resp.Lignes, 1)
	assert.Equal(t, 10, f.materielRepo.materiels[gants.ID].Quantite)
}

func TestCreerDemandeAutoriseLeStockNegatif(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 2, 5.00)

	_, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		casque.ID.String(): 5,
	}))
	require.NoError(t, err)

	// Over-withdrawal goes through; the negative stock surfaces as an alert
	assert.Equal(t, -3, f.materielRepo.materiels[casque.ID].Quantite)
}

func TestCreerDemandeSuperviseurInconnu(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 10, 5.00)

	req := f.request(map[string]int{casque.ID.String(): 1})
	req.SuperviseurID = uuid.NewString()

	_, err := f.svc.CreerDemande(context.Background(), req)
	assert.True(t, apierror.IsNotFound(err))

	// Nothing was written
	assert.Equal(t, 10, f.materielRepo.materiels[casque.ID].Quantite)
	assert.Empty(t, f.demandeRepo.demandes)
	assert.Empty(t, f.mouvementRepo.mouvements)
}

func TestCreerDemandeMaterielInconnu(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 10, 5.00)

	_, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		casque.ID.String(): 2,
		uuid.NewString():   1,
	}))
	assert.True(t, apierror.IsNotFound(err))
	assert.Equal(t, 10, f.materielRepo.materiels[casque.ID].Quantite)
}

func TestCreerDemandeMaterielInconnuQuantiteNulle(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 10, 5.00)

	// An unknown id is rejected even when its quantity would be dropped
	_, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		casque.ID.String(): 2,
		uuid.NewString():   0,
	}))
	assert.True(t, apierror.IsNotFound(err))
}

func TestCreerDemandeAgentsIdentiquesToleres(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 10, 5.00)

	req := f.request(map[string]int{casque.ID.String(): 1})
	req.Agent2ID = req.Agent1ID

	resp, err := f.svc.CreerDemande(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, resp.Agent1ID, resp.Agent2ID)
}

func TestCreerDemandeConcurrentePasDePerteDeMiseAJour(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 10, 5.00)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
				casque.ID.String(): 5,
			}))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Both decrements land: 10 − 5 − 5 = 0, never 5
	assert.Equal(t, 0, f.materielRepo.materiels[casque.ID].Quantite)
	assert.Len(t, f.mouvementRepo.mouvements, 2)
}

func TestCreerDemandeEmissionEchoueDemandePasse(t *testing.T) {
	f := newDemandeFixture(t)
	f.emitter.fail = true
	casque := f.seedMateriel("Casque", 10, 5.00)

	resp, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		casque.ID.String(): 1,
	}))
	require.NoError(t, err)
	assert.Equal(t, model.StatusApprouve, resp.Status)
}

func TestCreerDemandeEmetAuditEtNotification(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 10, 5.00)

	_, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
		casque.ID.String(): 2,
	}))
	require.NoError(t, err)

	require.Len(t, f.emitter.audits, 1)
	assert.Equal(t, events.ActionCreateDemande, f.emitter.audits[0].Action)
	require.Len(t, f.emitter.notifs, 1)
	assert.Contains(t, f.emitter.notifs[0].Message, f.superviseur.Nom)
}

func TestListerDemandesPaginationParDefaut(t *testing.T) {
	f := newDemandeFixture(t)
	casque := f.seedMateriel("Casque", 100, 5.00)

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreerDemande(context.Background(), f.request(map[string]int{
			casque.ID.String(): 1,
		}))
		require.NoError(t, err)
	}

	list, err := f.svc.ListerDemandes(context.Background(), dto.DemandeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 50, list.Limit)
}

func TestObtenirDemandeInconnue(t *testing.T) {
	f := newDemandeFixture(t)

	_, err := f.svc.ObtenirDemande(context.Background(), uuid.New())
	assert.True(t, apierror.IsNotFound(err))
}
