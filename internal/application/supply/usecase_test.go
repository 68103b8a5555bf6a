package supply_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/access"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/dto"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el runner toma un snapshot
// del estado y lo restaura si el callback falla, emulando el Rollback real.
// El mutex serializa transacciones como lo haría el FOR UPDATE en Postgres.
// ──────────────────────────────────────────────────────────────────────────────

type productRecord struct {
	product   entity.Product
	companyID string
}

type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*productRecord
	suppliers map[string]*entity.Supplier
	supplies  map[string]*entity.Supply
	lines     []entity.SupplyLine
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[string]*productRecord),
		suppliers: make(map[string]*entity.Supplier),
		supplies:  make(map[string]*entity.Supply),
	}
}

func (s *fakeStore) addProduct(id, companyID string, quantity int64) {
	s.products[id] = &productRecord{
		product:   entity.Product{ID: id, StorageID: "st-" + companyID, Title: "producto " + id, Quantity: quantity},
		companyID: companyID,
	}
}

func (s *fakeStore) addSupplier(id, companyID string) {
	s.suppliers[id] = &entity.Supplier{ID: id, CompanyID: companyID, Name: "proveedor " + id}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for k, v := range s.products {
		rec := *v
		cp.products[k] = &rec
	}
	for k, v := range s.suppliers {
		sup := *v
		cp.suppliers[k] = &sup
	}
	for k, v := range s.supplies {
		sup := *v
		cp.supplies[k] = &sup
	}
	cp.lines = append([]entity.SupplyLine(nil), s.lines...)
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.supplies = snap.supplies
	s.lines = snap.lines
}

type fakeSupplyRepo struct{ store *fakeStore }

func (r *fakeSupplyRepo) Create(sup *entity.Supply) error {
	cp := *sup
	cp.Lines = nil
	r.store.supplies[sup.ID] = &cp
	return nil
}

func (r *fakeSupplyRepo) CreateLine(line *entity.SupplyLine) error {
	r.store.lines = append(r.store.lines, *line)
	return nil
}

func (r *fakeSupplyRepo) GetByIDAndCompany(id, companyID string) (*entity.Supply, error) {
	sup, ok := r.store.supplies[id]
	if !ok || sup.CompanyID != companyID {
		return nil, nil
	}
	out := *sup
	out.Lines = r.linesOf(id)
	return &out, nil
}

func (r *fakeSupplyRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Supply, error) {
	var all []*entity.Supply
	for _, sup := range r.store.supplies {
		if sup.CompanyID != companyID {
			continue
		}
		out := *sup
		out.Lines = r.linesOf(sup.ID)
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeSupplyRepo) linesOf(supplyID string) []entity.SupplyLine {
	var out []entity.SupplyLine
	for _, l := range r.store.lines {
		if l.SupplyID == supplyID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }

func (r *fakeProductRepo) GetByIDAndCompany(id, companyID string) (*entity.Product, error) {
	rec, ok := r.store.products[id]
	if !ok || rec.companyID != companyID {
		return nil, nil
	}
	out := rec.product
	return &out, nil
}

func (r *fakeProductRepo) GetForUpdateInCompany(id, companyID string) (*entity.Product, error) {
	return r.GetByIDAndCompany(id, companyID)
}

func (r *fakeProductRepo) AddQuantity(id string, delta int64) error {
	rec, ok := r.store.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	rec.product.Quantity += delta
	return nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(id, companyID string) error { return nil }

type fakeSupplierRepo struct{ store *fakeStore }

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) GetByIDAndCompany(id, companyID string) (*entity.Supplier, error) {
	sup, ok := r.store.suppliers[id]
	if !ok || sup.CompanyID != companyID {
		return nil, nil
	}
	out := *sup
	return &out, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { return nil }

func (r *fakeSupplierRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}

func (r *fakeSupplierRepo) Delete(id, companyID string) error { return nil }

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	supplyRepo repository.SupplyRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	err := fn(
		&fakeSupplyRepo{store: r.store},
		&fakeProductRepo{store: r.store},
		&fakeSupplierRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "comp-a"
	companyB = "comp-b"
)

var (
	member = access.Principal{UserID: "u1", CompanyID: companyA}
	nadie  = access.Principal{UserID: "u2"} // sin empresa
)

func newUC(store *fakeStore) *supply.CreateSupplyUseCase {
	return supply.NewCreateSupplyUseCase(
		&fakeTxRunner{store: store},
		access.NewGuard(),
		&fakeSupplyRepo{store: store},
	)
}

func lines(pairs ...interface{}) []dto.CreateSupplyLineRequest {
	var out []dto.CreateSupplyLineRequest
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, dto.CreateSupplyLineRequest{
			ProductID: pairs[i].(string),
			Quantity:  int64(pairs[i+1].(int)),
		})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSupply
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSupply_IncrementaStockPorLinea(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	store.addProduct("prod-1", companyA, 10)
	store.addProduct("prod-2", companyA, 0)
	uc := newUC(store)

	out, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "sup-1",
		SupplyLines: lines("prod-1", 5, "prod-2", 7),
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, companyA, out.CompanyID)
	assert.Equal(t, "sup-1", out.SupplierID)
	require.Len(t, out.SupplyLines, 2)
	assert.EqualValues(t, 15, out.SupplyLines[0].Product.Quantity,
		"la respuesta debe traer el stock ya actualizado")
	assert.EqualValues(t, 7, out.SupplyLines[1].Product.Quantity)

	assert.EqualValues(t, 15, store.products["prod-1"].product.Quantity)
	assert.EqualValues(t, 7, store.products["prod-2"].product.Quantity)
}

// El mismo producto puede aparecer en varias líneas: los incrementos se acumulan.
func TestCreateSupply_ProductoRepetido_Acumula(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	store.addProduct("prod-1", companyA, 2)
	uc := newUC(store)

	out, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "sup-1",
		SupplyLines: lines("prod-1", 3, "prod-1", 4),
	})
	require.NoError(t, err)
	require.Len(t, out.SupplyLines, 2)
	assert.EqualValues(t, 9, store.products["prod-1"].product.Quantity, "2+3+4")
}

func TestCreateSupply_CantidadInvalida_RollbackTotal(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	store.addProduct("prod-1", companyA, 10)
	store.addProduct("prod-2", companyA, 10)
	uc := newUC(store)

	_, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "sup-1",
		SupplyLines: lines("prod-1", 5, "prod-2", 0),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	var lineErr *supply.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 1, lineErr.Index, "la línea culpable es la segunda (índice 1)")
	assert.Contains(t, err.Error(), "línea 2", "el mensaje identifica la línea 1-based")

	// Nada quedó aplicado: ni el incremento de la primera línea, ni el suministro.
	assert.EqualValues(t, 10, store.products["prod-1"].product.Quantity)
	assert.EqualValues(t, 10, store.products["prod-2"].product.Quantity)
	assert.Empty(t, store.supplies)
	assert.Empty(t, store.lines)
}

func TestCreateSupply_ProductoDeOtraEmpresa_IndistinguibleDeInexistente(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	store.addProduct("prod-ajeno", companyB, 10)
	uc := newUC(store)

	// Producto de otra empresa
	_, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "sup-1",
		SupplyLines: lines("prod-ajeno", 5),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Producto inexistente: mismo error, sin distinguir los casos
	_, err2 := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "sup-1",
		SupplyLines: lines("prod-fantasma", 5),
	})
	require.Error(t, err2)
	assert.ErrorIs(t, err2, domain.ErrProductNotFound)

	assert.EqualValues(t, 10, store.products["prod-ajeno"].product.Quantity,
		"el stock del otro tenant no se toca")
}

func TestCreateSupply_ProveedorAjenoOVacio(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-ajeno", companyB)
	store.addProduct("prod-1", companyA, 1)
	uc := newUC(store)

	_, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "sup-ajeno",
		SupplyLines: lines("prod-1", 1),
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	_, err = uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "",
		SupplyLines: lines("prod-1", 1),
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	assert.Empty(t, store.supplies, "ningún suministro quedó registrado")
}

func TestCreateSupply_SinLineas(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	uc := newUC(store)

	_, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier: "sup-1",
	})
	assert.ErrorIs(t, err, domain.ErrEmptySupply)
}

func TestCreateSupply_SinEmpresa(t *testing.T) {
	store := newFakeStore()
	uc := newUC(store)

	_, err := uc.CreateSupply(context.Background(), nadie, dto.CreateSupplyRequest{
		Supplier:    "sup-1",
		SupplyLines: lines("prod-1", 1),
	})
	assert.ErrorIs(t, err, domain.ErrNotAttachedToCompany)
}

// PrimerError: con varias líneas inválidas se reporta la primera en orden de
// entrada, no cualquiera.
func TestCreateSupply_ReportaPrimerErrorEnOrden(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	store.addProduct("prod-1", companyA, 0)
	uc := newUC(store)

	_, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
		Supplier:    "sup-1",
		SupplyLines: lines("prod-fantasma", 5, "prod-1", -1),
	})
	var lineErr *supply.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 0, lineErr.Index)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Dos intakes concurrentes sobre el mismo producto: sin lost updates, el
// resultado final es la suma de ambos.
func TestCreateSupply_Concurrente_SinLostUpdates(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	store.addProduct("prod-1", companyA, 10)
	uc := newUC(store)

	var wg sync.WaitGroup
	for _, qty := range []int{5, 3} {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			_, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
				Supplier:    "sup-1",
				SupplyLines: lines("prod-1", q),
			})
			assert.NoError(t, err)
		}(qty)
	}
	wg.Wait()

	assert.EqualValues(t, 18, store.products["prod-1"].product.Quantity, "10+5+3")
	assert.Len(t, store.supplies, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetSupply / ListSupplies
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSupply_DeOtraEmpresa_RespondeNil(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-b", companyB)
	store.supplies["s-ajeno"] = &entity.Supply{ID: "s-ajeno", CompanyID: companyB, SupplierID: "sup-b"}
	uc := newUC(store)

	out, err := uc.GetSupply(context.Background(), member, "s-ajeno")
	require.NoError(t, err)
	assert.Nil(t, out, "un suministro ajeno se comporta como inexistente")

	out, err = uc.GetSupply(context.Background(), member, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestListSupplies_MasRecientesPrimero(t *testing.T) {
	store := newFakeStore()
	store.addSupplier("sup-1", companyA)
	store.addProduct("prod-1", companyA, 0)
	uc := newUC(store)

	for i := 0; i < 3; i++ {
		_, err := uc.CreateSupply(context.Background(), member, dto.CreateSupplyRequest{
			Supplier:    "sup-1",
			SupplyLines: lines("prod-1", 1),
		})
		require.NoError(t, err)
	}

	out, err := uc.ListSupplies(context.Background(), member, 10, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	for i := 1; i < len(out.Items); i++ {
		assert.False(t, out.Items[i-1].CreatedAt.Before(out.Items[i].CreatedAt),
			"el orden es del más reciente al más antiguo")
	}
}
