package pantry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/internal/domain"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/repository"
	"github.com/jcastano/despensa-api/pkg/logger"
)

// fakeItemRepo repositorio en memoria para los tests del caso de uso.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (r *fakeItemRepo) Find(_ context.Context, householdID string, skip, limit int) ([]*entity.Item, error) {
	all, _ := r.ListByHousehold(context.Background(), householdID)
	if skip >= len(all) {
		return nil, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByName(_ context.Context, householdID, name string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.HouseholdID == householdID && it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListByHousehold(_ context.Context, householdID string) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		if householdID == "" || it.HouseholdID == householdID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Save(_ context.Context, item *entity.Item) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return item, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	delete(r.items, id)
	return ok, nil
}

// fakeEventRepo libro de eventos en memoria, append-only.
type fakeEventRepo struct {
	mu     sync.Mutex
	events []*entity.Event
}

func (r *fakeEventRepo) Append(_ context.Context, ev *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *fakeEventRepo) List(_ context.Context, householdID string, limit, offset int) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Event, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].HouseholdID == householdID {
			out = append(out, r.events[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeEventRepo) ListByType(_ context.Context, householdID, eventType string) ([]*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Event, 0)
	for _, ev := range r.events {
		if ev.HouseholdID == householdID && ev.EventType == eventType {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) byType(eventType string) []*entity.Event {
	out, _ := r.ListByType(context.Background(), "hogar-1", eventType)
	return out
}

// fakeTxRunner pasa los mismos repositorios en memoria; la atomicidad no se
// ejercita aquí, solo el contrato de que ambas escrituras ocurren.
type fakeTxRunner struct {
	itemRepo  *fakeItemRepo
	eventRepo *fakeEventRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.EventRepository) error) error {
	return fn(t.itemRepo, t.eventRepo)
}

func newTestUseCase(t *testing.T) (*apppantry.InventoryUseCase, *fakeItemRepo, *fakeEventRepo) {
	t.Helper()
	uc, itemRepo, eventRepo, _ := newTestUseCaseWithScheduler(t, time.Millisecond)
	return uc, itemRepo, eventRepo
}

// newTestUseCaseWithScheduler permite una pausa larga para ejercitar el
// estado diferido sin que el timer dispare en medio del test.
func newTestUseCaseWithScheduler(t *testing.T, delay time.Duration) (*apppantry.InventoryUseCase, *fakeItemRepo, *fakeEventRepo, *apppantry.SaveScheduler) {
	t.Helper()
	itemRepo := newFakeItemRepo()
	eventRepo := &fakeEventRepo{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	scheduler := apppantry.NewSaveScheduler(delay, itemRepo, log)
	uc := apppantry.NewInventoryUseCase(&fakeTxRunner{itemRepo, eventRepo}, itemRepo, eventRepo, scheduler, 3)
	return uc, itemRepo, eventRepo, scheduler
}

func TestAddProduct_CreaYRegistraEvento(t *testing.T) {
	uc, repo, events := newTestUseCase(t)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name:           "Leche",
		Quantity:       2,
		Location:       "nevera",
		ExpirationDate: "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "hogar-1", item.HouseholdID)
	require.Len(t, item.Batches, 1)
	assert.Equal(t, "nevera", item.Batches[0].LocationID)

	saved, _ := repo.GetByID(ctx, item.ID)
	require.NotNil(t, saved, "el alta persiste el documento")

	adds := events.byType(entity.EventTypeADD)
	require.Len(t, adds, 1)
	assert.Equal(t, "manual", adds[0].Source)
	assert.True(t, adds[0].Quantity.Equal(dec("2")))
}

func TestAddProduct_MismoNombreAgregaLotes(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	first, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Leche", Quantity: 2, Location: "nevera", ExpirationDate: "2024-02-01",
	})
	require.NoError(t, err)

	second, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Leche", Quantity: 3, Location: "nevera", ExpirationDate: "2024-02-01",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "mismo nombre reutiliza el producto")
	require.Len(t, second.Batches, 1, "misma ubicación y fecha se fusionan")
	assert.True(t, second.Batches[0].Quantity.Equal(dec("5")))
}

func TestAddProduct_SinUbicacionFalla(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	_, err := uc.AddProduct(context.Background(), "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Leche", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrLocationRequired)
}

func TestAdjustQuantity_ConsumeConTopeEnCero(t *testing.T) {
	uc, repo, events := newTestUseCase(t)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Arroz", Quantity: 2, Location: "despensa",
	})
	require.NoError(t, err)

	updated, err := uc.AdjustQuantity(ctx, "hogar-1", item.ID, dto.AdjustQuantityRequest{
		Location:       "despensa",
		QuantityChange: -5,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Batches, "consumir de más vacía la ubicación sin error")

	saved, _ := repo.GetByID(ctx, item.ID)
	assert.Empty(t, saved.Batches)

	consumes := events.byType(entity.EventTypeCONSUME)
	require.Len(t, consumes, 1)
	assert.True(t, consumes[0].NextQuantity.IsZero())
}

func TestAdjustQuantity_DebounceAcumulaLosDeltas(t *testing.T) {
	uc, repo, events, scheduler := newTestUseCaseWithScheduler(t, time.Minute)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Leche", Quantity: 5, Location: "nevera",
	})
	require.NoError(t, err)

	// Dos taps rápidos dentro de la misma pausa de coalescencia: el segundo
	// debe partir del estado pendiente (4), no del persistido (5).
	var updated *entity.Item
	for i := 0; i < 2; i++ {
		updated, err = uc.AdjustQuantity(ctx, "hogar-1", item.ID, dto.AdjustQuantityRequest{
			Location:       "nevera",
			QuantityChange: -1,
			Debounce:       true,
		})
		require.NoError(t, err)
	}
	require.Len(t, updated.Batches, 1)
	assert.True(t, updated.Batches[0].Quantity.Equal(dec("3")), "ningún tap se pierde")

	// El log refleja la cadena real de estados, no dos 5→4.
	consumes := events.byType(entity.EventTypeCONSUME)
	require.Len(t, consumes, 2)
	assert.True(t, consumes[0].PreviousQuantity.Equal(dec("5")))
	assert.True(t, consumes[0].NextQuantity.Equal(dec("4")))
	assert.True(t, consumes[1].PreviousQuantity.Equal(dec("4")))
	assert.True(t, consumes[1].NextQuantity.Equal(dec("3")))

	// Aún sin persistir; el flush entrega los dos deltas en una escritura.
	persisted, _ := repo.GetByID(ctx, item.ID)
	assert.True(t, persisted.Batches[0].Quantity.Equal(dec("5")))
	scheduler.FlushAll()
	persisted, _ = repo.GetByID(ctx, item.ID)
	require.Len(t, persisted.Batches, 1)
	assert.True(t, persisted.Batches[0].Quantity.Equal(dec("3")))
}

func TestGuardadoExplicitoCancelaElDiferido(t *testing.T) {
	uc, repo, _, scheduler := newTestUseCaseWithScheduler(t, time.Minute)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Arroz", Quantity: 5, Location: "despensa",
	})
	require.NoError(t, err)

	_, err = uc.AdjustQuantity(ctx, "hogar-1", item.ID, dto.AdjustQuantityRequest{
		Location: "despensa", QuantityChange: -1, Debounce: true,
	})
	require.NoError(t, err)

	// Guardado explícito: parte del estado pendiente (4) y cancela el timer
	// viejo para que una escritura diferida no pise el documento más nuevo.
	updated, err := uc.AdjustQuantity(ctx, "hogar-1", item.ID, dto.AdjustQuantityRequest{
		Location: "despensa", QuantityChange: -1,
	})
	require.NoError(t, err)
	assert.True(t, updated.Batches[0].Quantity.Equal(dec("3")))

	assert.False(t, uc.CancelPendingSave(item.ID), "no queda guardado diferido programado")
	scheduler.FlushAll()
	persisted, _ := repo.GetByID(ctx, item.ID)
	require.Len(t, persisted.Batches, 1)
	assert.True(t, persisted.Batches[0].Quantity.Equal(dec("3")), "el flush no revive un estado viejo")
}

func TestMoveProduct_StockInsuficiente(t *testing.T) {
	uc, repo, _ := newTestUseCase(t)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Pasta", Quantity: 2, Location: "despensa",
	})
	require.NoError(t, err)

	_, err = uc.MoveProduct(ctx, "hogar-1", item.ID, dto.MoveRequest{
		FromLocation: "despensa",
		ToLocation:   "nevera",
		Quantity:     5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	saved, _ := repo.GetByID(ctx, item.ID)
	require.Len(t, saved.Batches, 1)
	assert.Equal(t, "despensa", saved.Batches[0].LocationID, "el rechazo no aplica nada")
}

func TestMoveProduct_CantidadCeroMueveTodo(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Pasta", Quantity: 4, Location: "despensa",
	})
	require.NoError(t, err)

	moved, err := uc.MoveProduct(ctx, "hogar-1", item.ID, dto.MoveRequest{
		FromLocation: "despensa",
		ToLocation:   "nevera",
	})
	require.NoError(t, err)
	require.Len(t, moved.Batches, 1)
	assert.Equal(t, "nevera", moved.Batches[0].LocationID)
	assert.True(t, moved.Batches[0].Quantity.Equal(dec("4")))
}

func TestMoveProduct_VencimientoExplicitoRestringeElOrigen(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	// Dos lotes en la misma ubicación; el que vence primero NO es el pedido.
	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Yogur",
		Batches: []dto.BatchDTO{
			{LocationID: "despensa", ExpirationDate: "2024-02-01", Quantity: dec("2")},
			{LocationID: "despensa", ExpirationDate: "2024-06-01", Quantity: dec("3")},
		},
	})
	require.NoError(t, err)

	moved, err := uc.MoveProduct(ctx, "hogar-1", item.ID, dto.MoveRequest{
		FromLocation:   "despensa",
		ToLocation:     "nevera",
		ExpirationDate: "2024-06-01",
	})
	require.NoError(t, err)

	byLoc := map[string]string{}
	for _, b := range moved.Batches {
		byLoc[b.LocationID+"|"+b.ExpirationDate] = b.Quantity.String()
	}
	assert.Equal(t, "3", byLoc["nevera|2024-06-01"], "se mueve el lote pedido, no el FIFO")
	assert.Equal(t, "2", byLoc["despensa|2024-02-01"], "el lote que vence antes no se toca")

	// El stock disponible para mover es solo el de esa fecha.
	_, err = uc.MoveProduct(ctx, "hogar-1", item.ID, dto.MoveRequest{
		FromLocation:   "despensa",
		ToLocation:     "nevera",
		Quantity:       3,
		ExpirationDate: "2024-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestGetSummary_DeOtroHogarEsForbidden(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Leche", Quantity: 1, Location: "nevera",
	})
	require.NoError(t, err)

	_, err = uc.GetSummary(ctx, "hogar-2", item.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetSummary(ctx, "hogar-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteItem_RegistraEventoDelete(t *testing.T) {
	uc, repo, events := newTestUseCase(t)
	ctx := context.Background()

	item, err := uc.AddProduct(ctx, "hogar-1", "manual", dto.CreateItemRequest{
		Name: "Pan", Quantity: 3, Location: "despensa",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteItem(ctx, "hogar-1", item.ID, "manual"))

	saved, _ := repo.GetByID(ctx, item.ID)
	assert.Nil(t, saved)

	deletes := events.byType(entity.EventTypeDELETE)
	require.Len(t, deletes, 1)
	assert.True(t, deletes[0].PreviousQuantity.Equal(dec("3")))
	assert.True(t, deletes[0].NextQuantity.IsZero())
}
