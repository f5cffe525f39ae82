package pantry

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/application/dto"
	"github.com/jcastano/despensa-api/internal/domain"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
	"github.com/jcastano/despensa-api/internal/domain/repository"
)

// InventoryUseCase casos de uso de mutación y lectura del inventario del
// hogar. Toda mutación reconstruye el estado en memoria con los servicios de
// dominio ("leer estado actual, calcular estado nuevo, reemplazar"), registra
// un evento y entrega el documento a una sola escritura: inmediata y
// transaccional (TxRunner) o diferida (SaveScheduler) para taps rápidos.
type InventoryUseCase struct {
	txRunner   TxRunner
	itemRepo   repository.ItemRepository
	eventRepo  repository.EventRepository
	scheduler  *SaveScheduler
	windowDays int
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	eventRepo repository.EventRepository,
	scheduler *SaveScheduler,
	windowDays int,
) *InventoryUseCase {
	if windowDays <= 0 {
		windowDays = pantry.DefaultExpiryWindowDays
	}
	return &InventoryUseCase{
		txRunner:   txRunner,
		itemRepo:   itemRepo,
		eventRepo:  eventRepo,
		scheduler:  scheduler,
		windowDays: windowDays,
	}
}

// WindowDays ventana de "por vencer" configurada.
func (uc *InventoryUseCase) WindowDays() int { return uc.windowDays }

// ── Mutaciones ────────────────────────────────────────────────────────────────

// AddProduct alta rápida: crea el producto o agrega lotes a uno existente con
// el mismo nombre. La ubicación es obligatoria; guardar un producto sin
// ubicación corrompería el modelo de agregación.
func (uc *InventoryUseCase) AddProduct(ctx context.Context, householdID, source string, in dto.CreateItemRequest) (*entity.Item, error) {
	return uc.addProduct(ctx, householdID, source, entity.EventTypeADD, in)
}

// ImportItems carga masiva; cada producto importado genera un evento IMPORT.
// Devuelve cuántos se procesaron antes del primer error.
func (uc *InventoryUseCase) ImportItems(ctx context.Context, householdID string, in dto.ImportItemsRequest) (int, error) {
	if len(in.Items) == 0 {
		return 0, domain.ErrInvalidInput
	}
	for i, req := range in.Items {
		if _, err := uc.addProduct(ctx, householdID, "import", entity.EventTypeIMPORT, req); err != nil {
			return i, err
		}
	}
	return len(in.Items), nil
}

func (uc *InventoryUseCase) addProduct(ctx context.Context, householdID, source, eventType string, in dto.CreateItemRequest) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	newBatches, err := batchesFromRequest(in)
	if err != nil {
		return nil, err
	}
	added := pantry.SumQuantities(newBatches)
	now := time.Now()

	item, err := uc.itemRepo.GetByName(ctx, householdID, name)
	if err != nil {
		return nil, err
	}
	prev := decimal.Zero
	if item == nil {
		item = &entity.Item{
			ID:           uuid.New().String(),
			HouseholdID:  householdID,
			Name:         name,
			CategoryID:   in.CategoryID,
			Supermarket:  strings.TrimSpace(in.Supermarket),
			Unit:         strings.TrimSpace(in.Unit),
			IsBasic:      in.IsBasic,
			MinThreshold: pantry.RoundQuantity(in.MinThreshold),
			NoExpiry:     in.NoExpiry,
			CreatedAt:    now,
		}
	} else {
		prev = pantry.SumQuantities(item.Batches)
		newBatches = append(item.Batches, newBatches...)
	}
	item.Batches = pantry.PruneEmptyBatches(pantry.MergeBatchesByExpiry(newBatches))
	item.UpdatedAt = now

	ev := uc.buildEvent(item, eventType, added, added, prev, source)
	if err := uc.saveWithEvent(ctx, item, ev); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem edición avanzada: reemplaza metadatos y, si el request trae
// lotes, el conjunto completo de lotes. Genera un evento EDIT con el delta
// resultante.
func (uc *InventoryUseCase) UpdateItem(ctx context.Context, householdID, itemID string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.getOwned(ctx, householdID, itemID)
	if err != nil {
		return nil, err
	}
	prev := pantry.SumQuantities(item.Batches)

	if name := strings.TrimSpace(in.Name); name != "" {
		item.Name = name
	}
	if in.CategoryID != "" {
		item.CategoryID = in.CategoryID
	}
	if in.Supermarket != "" {
		item.Supermarket = strings.TrimSpace(in.Supermarket)
	}
	if in.Unit != "" {
		item.Unit = strings.TrimSpace(in.Unit)
	}
	if in.IsBasic != nil {
		item.IsBasic = *in.IsBasic
	}
	if in.NoExpiry != nil {
		item.NoExpiry = *in.NoExpiry
	}
	if !in.MinThreshold.IsZero() {
		item.MinThreshold = pantry.RoundQuantity(in.MinThreshold)
	}
	if in.Batches != nil {
		batches := make([]entity.Batch, 0, len(in.Batches))
		for _, b := range in.Batches {
			if strings.TrimSpace(b.LocationID) == "" {
				return nil, domain.ErrLocationRequired
			}
			batches = append(batches, batchFromDTO(b))
		}
		item.Batches = pantry.PruneEmptyBatches(pantry.MergeBatchesByExpiry(batches))
	}
	item.UpdatedAt = time.Now()

	next := pantry.SumQuantities(item.Batches)
	ev := uc.buildEvent(item, entity.EventTypeEDIT, next, next.Sub(prev), prev, "edit")
	if err := uc.saveWithEvent(ctx, item, ev); err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustQuantity aplica un delta con signo sobre una ubicación. Positivo
// agrega al lote que comparte (ubicación, vencimiento) o crea uno nuevo;
// negativo consume FIFO-por-vencimiento dentro de la ubicación, con tope en 0.
// Con Debounce la escritura se difiere coalescida; el evento se registra ya.
func (uc *InventoryUseCase) AdjustQuantity(ctx context.Context, householdID, itemID string, in dto.AdjustQuantityRequest) (*entity.Item, error) {
	item, err := uc.getOwned(ctx, householdID, itemID)
	if err != nil {
		return nil, err
	}
	loc := strings.TrimSpace(in.Location)
	if loc == "" {
		return nil, domain.ErrLocationRequired
	}
	delta := pantry.RoundQuantity(pantry.NumberOrZero(in.QuantityChange))
	if delta.IsZero() {
		return item, nil
	}

	prev := pantry.SumQuantities(item.Batches)
	if delta.GreaterThan(decimal.Zero) {
		item.Batches = addToBatch(item.Batches, loc, in.ExpirationDate, delta)
	} else {
		item.Batches = consumeAt(item.Batches, loc, in.ExpirationDate, delta.Neg())
	}
	item.Batches = pantry.PruneEmptyBatches(pantry.MergeBatchesByExpiry(item.Batches))
	item.UpdatedAt = time.Now()
	next := pantry.SumQuantities(item.Batches)

	eventType := entity.EventTypeADD
	if delta.LessThan(decimal.Zero) {
		eventType = entity.EventTypeCONSUME
	}
	source := in.Source
	if source == "" {
		source = "adjust"
	}
	ev := uc.buildEvent(item, eventType, delta.Abs(), next.Sub(prev), prev, source)

	if in.Debounce {
		// Escritura optimista: el evento queda registrado ya; el documento
		// se persiste coalescido tras la pausa de inactividad.
		if err := uc.eventRepo.Append(ctx, ev); err != nil {
			return nil, err
		}
		uc.scheduler.Schedule(item)
		return item, nil
	}
	if err := uc.saveWithEvent(ctx, item, ev); err != nil {
		return nil, err
	}
	return item, nil
}

// MoveProduct traslada stock entre dos ubicaciones del mismo producto como
// una sola reconstrucción atómica en memoria entregada a un único guardado.
// Cantidad ≤ 0 mueve todo el stock del origen. Stock insuficiente devuelve
// ErrInsufficientStock sin aplicar nada; con vencimiento explícito el stock
// disponible es solo el de esa fecha.
func (uc *InventoryUseCase) MoveProduct(ctx context.Context, householdID, itemID string, in dto.MoveRequest) (*entity.Item, error) {
	item, err := uc.getOwned(ctx, householdID, itemID)
	if err != nil {
		return nil, err
	}
	from := strings.TrimSpace(in.FromLocation)
	to := strings.TrimSpace(in.ToLocation)
	if from == "" || to == "" || strings.EqualFold(from, to) {
		return nil, domain.ErrInvalidInput
	}

	source, rest := partitionByLocation(item.Batches, from)
	destination, others := partitionByLocation(rest, to)

	// Con vencimiento explícito solo los lotes de esa fecha son trasladables;
	// el resto del origen queda fuera del motor y no se toca.
	if expiry := strings.TrimSpace(in.ExpirationDate); expiry != "" {
		var excluded []entity.Batch
		source, excluded = partitionByExpiry(source, expiry)
		others = append(others, excluded...)
	}

	amount := pantry.RoundQuantity(pantry.NumberOrZero(in.Quantity))
	if amount.LessThanOrEqual(decimal.Zero) {
		amount = pantry.SumQuantities(source)
	}

	res := pantry.MoveBatches(pantry.MoveInput{
		Source:              source,
		Destination:         destination,
		Amount:              amount,
		DestinationLocation: to,
	})
	if len(res.Moved) == 0 {
		return nil, domain.ErrInsufficientStock
	}

	rebuilt := make([]entity.Batch, 0, len(others)+len(res.RemainingSource)+len(res.NextDestination))
	rebuilt = append(rebuilt, others...)
	rebuilt = append(rebuilt, res.RemainingSource...)
	rebuilt = append(rebuilt, res.NextDestination...)
	item.Batches = pantry.PruneEmptyBatches(rebuilt)
	item.UpdatedAt = time.Now()

	total := pantry.SumQuantities(item.Batches)
	ev := uc.buildEvent(item, entity.EventTypeEDIT, amount, decimal.Zero, total, "move")
	if err := uc.saveWithEvent(ctx, item, ev); err != nil {
		return nil, err
	}
	return item, nil
}

// MarkOpened marca un lote como abierto. Sin ubicación ni vencimiento se abre
// el lote más próximo a vencer (el que se debería consumir primero).
func (uc *InventoryUseCase) MarkOpened(ctx context.Context, householdID, itemID string, in dto.MarkOpenedRequest) (*entity.Item, error) {
	item, err := uc.getOwned(ctx, householdID, itemID)
	if err != nil {
		return nil, err
	}
	idx := findBatchToOpen(item.Batches, in.Location, in.ExpirationDate)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	if item.Batches[idx].Opened {
		return item, nil
	}
	item.Batches[idx].Opened = true
	item.UpdatedAt = time.Now()

	total := pantry.SumQuantities(item.Batches)
	ev := uc.buildEvent(item, entity.EventTypeEDIT, item.Batches[idx].Quantity, decimal.Zero, total, "open")
	ev.BatchID = item.Batches[idx].BatchID
	if err := uc.saveWithEvent(ctx, item, ev); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem elimina el producto y registra el evento DELETE con el total
// previo, en la misma transacción.
func (uc *InventoryUseCase) DeleteItem(ctx context.Context, householdID, itemID, source string) error {
	item, err := uc.getOwned(ctx, householdID, itemID)
	if err != nil {
		return err
	}
	uc.scheduler.Cancel(itemID)

	prev := pantry.SumQuantities(item.Batches)
	ev := uc.buildEvent(item, entity.EventTypeDELETE, prev, prev.Neg(), prev, source)
	ev.NextQuantity = decimal.Zero

	return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, eventRepo repository.EventRepository) error {
		if _, err := itemRepo.Delete(ctx, itemID); err != nil {
			return err
		}
		return eventRepo.Append(ctx, ev)
	})
}

// CancelPendingSave descarta el guardado diferido de un producto (modal
// cerrado descartando cambios).
func (uc *InventoryUseCase) CancelPendingSave(itemID string) bool {
	return uc.scheduler.Cancel(itemID)
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// GetByName resuelve un producto por nombre dentro del hogar (lo usa el
// catálogo de herramientas del asistente). ErrNotFound si no existe.
func (uc *InventoryUseCase) GetByName(ctx context.Context, householdID, name string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByName(ctx, householdID, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetSummary modelo de vista de un producto.
func (uc *InventoryUseCase) GetSummary(ctx context.Context, householdID, itemID string) (*dto.ItemSummaryDTO, error) {
	item, err := uc.getOwned(ctx, householdID, itemID)
	if err != nil {
		return nil, err
	}
	s := summaryToDTO(pantry.BuildItemSummary(*item, time.Now(), uc.windowDays), item.Batches)
	return &s, nil
}

// ListSummaries modelos de vista de todos los productos del hogar.
func (uc *InventoryUseCase) ListSummaries(ctx context.Context, householdID string) ([]dto.ItemSummaryDTO, error) {
	items, err := uc.itemRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ItemSummaryDTO, 0, len(items))
	for _, it := range items {
		out = append(out, summaryToDTO(pantry.BuildItemSummary(*it, now, uc.windowDays), it.Batches))
	}
	return out, nil
}

// ExpiringSoon productos con algún lote vencido o por vencer dentro de la
// ventana indicada (días ≤ 0 usa la configurada).
func (uc *InventoryUseCase) ExpiringSoon(ctx context.Context, householdID string, days int) ([]dto.ItemSummaryDTO, error) {
	if days <= 0 {
		days = uc.windowDays
	}
	items, err := uc.itemRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ItemSummaryDTO, 0)
	for _, it := range items {
		s := pantry.BuildItemSummary(*it, now, days)
		if s.Counts.Expired > 0 || s.Counts.NearExpiry > 0 {
			out = append(out, summaryToDTO(s, it.Batches))
		}
	}
	return out, nil
}

// ListByLocation productos con stock en la ubicación dada.
func (uc *InventoryUseCase) ListByLocation(ctx context.Context, householdID, location string) ([]dto.ItemSummaryDTO, error) {
	items, err := uc.itemRepo.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ItemSummaryDTO, 0)
	for _, it := range items {
		if pantry.QuantityAtLocation(it.Batches, location).LessThanOrEqual(decimal.Zero) {
			continue
		}
		out = append(out, summaryToDTO(pantry.BuildItemSummary(*it, now, uc.windowDays), it.Batches))
	}
	return out, nil
}

// History eventos del hogar, más recientes primero.
func (uc *InventoryUseCase) History(ctx context.Context, householdID string, limit, offset int) ([]dto.EventDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	events, err := uc.eventRepo.List(ctx, householdID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.EventDTO{
			ID:               ev.ID,
			EventType:        ev.EventType,
			ProductID:        ev.ProductID,
			ProductName:      ev.ProductName,
			Quantity:         ev.Quantity,
			DeltaQuantity:    ev.DeltaQuantity,
			PreviousQuantity: ev.PreviousQuantity,
			NextQuantity:     ev.NextQuantity,
			Unit:             ev.Unit,
			BatchID:          ev.BatchID,
			Source:           ev.Source,
			Timestamp:        ev.Timestamp,
		})
	}
	return out, nil
}

// ── Helpers internos ──────────────────────────────────────────────────────────

func (uc *InventoryUseCase) getOwned(ctx context.Context, householdID, itemID string) (*entity.Item, error) {
	// El estado optimista pendiente es autoritativo sobre el persistido:
	// mutar un producto con un guardado diferido en vuelo debe partir del
	// último estado calculado o se pierde el delta anterior.
	item, ok := uc.scheduler.Peek(itemID)
	if !ok {
		var err error
		item, err = uc.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.HouseholdID != householdID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (uc *InventoryUseCase) saveWithEvent(ctx context.Context, item *entity.Item, ev *entity.Event) error {
	// El guardado explícito ya incorpora el estado pendiente (getOwned lee a
	// través del scheduler); el timer viejo se cancela para que una escritura
	// diferida en vuelo no pise este documento más nuevo.
	uc.scheduler.Cancel(item.ID)
	return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, eventRepo repository.EventRepository) error {
		if _, err := itemRepo.Save(ctx, item); err != nil {
			return err
		}
		return eventRepo.Append(ctx, ev)
	})
}

func (uc *InventoryUseCase) buildEvent(item *entity.Item, eventType string, qty, delta, prev decimal.Decimal, source string) *entity.Event {
	return &entity.Event{
		ID:               uuid.New().String(),
		HouseholdID:      item.HouseholdID,
		EventType:        eventType,
		ProductID:        item.ID,
		ProductName:      item.Name,
		Quantity:         qty,
		DeltaQuantity:    delta,
		PreviousQuantity: prev,
		NextQuantity:     prev.Add(delta),
		Unit:             item.Unit,
		Source:           source,
		Timestamp:        time.Now(),
	}
}

// batchesFromRequest arma los lotes iniciales de un alta. Todo lote necesita
// ubicación: es la única validación dura de guardado.
func batchesFromRequest(in dto.CreateItemRequest) ([]entity.Batch, error) {
	if len(in.Batches) > 0 {
		out := make([]entity.Batch, 0, len(in.Batches))
		for _, b := range in.Batches {
			if strings.TrimSpace(b.LocationID) == "" {
				return nil, domain.ErrLocationRequired
			}
			out = append(out, batchFromDTO(b))
		}
		return out, nil
	}
	loc := strings.TrimSpace(in.Location)
	if loc == "" {
		return nil, domain.ErrLocationRequired
	}
	qty := pantry.RoundQuantity(pantry.NumberOrZero(in.Quantity))
	if qty.LessThan(decimal.Zero) {
		qty = decimal.Zero
	}
	return []entity.Batch{{
		BatchID:        uuid.New().String(),
		Quantity:       qty,
		ExpirationDate: strings.TrimSpace(in.ExpirationDate),
		LocationID:     entity.NormalizeLocationID(loc),
	}}, nil
}

func batchFromDTO(b dto.BatchDTO) entity.Batch {
	id := b.BatchID
	if id == "" {
		id = uuid.New().String()
	}
	qty := pantry.RoundQuantity(b.Quantity)
	if qty.LessThan(decimal.Zero) {
		qty = decimal.Zero
	}
	return entity.Batch{
		BatchID:        id,
		Quantity:       qty,
		ExpirationDate: strings.TrimSpace(b.ExpirationDate),
		Opened:         b.Opened,
		LocationID:     entity.NormalizeLocationID(b.LocationID),
	}
}

func partitionByLocation(batches []entity.Batch, location string) (at, rest []entity.Batch) {
	location = entity.NormalizeLocationID(location)
	at = make([]entity.Batch, 0, len(batches))
	rest = make([]entity.Batch, 0, len(batches))
	for _, b := range batches {
		if entity.NormalizeLocationID(b.LocationID) == location {
			at = append(at, b)
		} else {
			rest = append(rest, b)
		}
	}
	return at, rest
}

func partitionByExpiry(batches []entity.Batch, expiry string) (at, rest []entity.Batch) {
	at = make([]entity.Batch, 0, len(batches))
	rest = make([]entity.Batch, 0, len(batches))
	for _, b := range batches {
		if strings.TrimSpace(b.ExpirationDate) == expiry {
			at = append(at, b)
		} else {
			rest = append(rest, b)
		}
	}
	return at, rest
}

// addToBatch suma el delta al lote que comparte (ubicación, vencimiento) o
// crea uno nuevo; la fusión posterior canoniza duplicados.
func addToBatch(batches []entity.Batch, location, expiry string, delta decimal.Decimal) []entity.Batch {
	location = entity.NormalizeLocationID(location)
	expiry = strings.TrimSpace(expiry)
	for i, b := range batches {
		if entity.NormalizeLocationID(b.LocationID) == location && strings.TrimSpace(b.ExpirationDate) == expiry {
			batches[i].Quantity = pantry.RoundQuantity(b.Quantity.Add(delta))
			return batches
		}
	}
	return append(batches, entity.Batch{
		BatchID:        uuid.New().String(),
		Quantity:       delta,
		ExpirationDate: expiry,
		LocationID:     location,
	})
}

// consumeAt descuenta dentro de una ubicación. Con vencimiento explícito solo
// toca los lotes de esa fecha; sin él consume FIFO-por-vencimiento. Siempre
// con tope en 0: consumir de más no es error, vacía la ubicación.
func consumeAt(batches []entity.Batch, location, expiry string, amount decimal.Decimal) []entity.Batch {
	target, rest := partitionByLocation(batches, location)
	expiry = strings.TrimSpace(expiry)
	if expiry != "" {
		matching := make([]entity.Batch, 0, len(target))
		others := make([]entity.Batch, 0, len(target))
		for _, b := range target {
			if strings.TrimSpace(b.ExpirationDate) == expiry {
				matching = append(matching, b)
			} else {
				others = append(others, b)
			}
		}
		_, remaining := pantry.ConsumeFIFO(matching, amount)
		return append(rest, append(others, remaining...)...)
	}
	_, remaining := pantry.ConsumeFIFO(target, amount)
	return append(rest, remaining...)
}

// findBatchToOpen elige el lote a abrir: filtro opcional por ubicación y
// vencimiento; por defecto el de vencimiento más próximo (sin fecha al final).
func findBatchToOpen(batches []entity.Batch, location, expiry string) int {
	location = strings.TrimSpace(location)
	expiry = strings.TrimSpace(expiry)

	best := -1
	var bestTime time.Time
	bestDated := false
	for i, b := range batches {
		if location != "" && entity.NormalizeLocationID(b.LocationID) != entity.NormalizeLocationID(location) {
			continue
		}
		if expiry != "" && strings.TrimSpace(b.ExpirationDate) != expiry {
			continue
		}
		t, dated := pantry.ParseExpiry(b.ExpirationDate)
		if best < 0 {
			best, bestTime, bestDated = i, t, dated
			continue
		}
		if dated && (!bestDated || t.Before(bestTime)) {
			best, bestTime, bestDated = i, t, dated
		}
	}
	return best
}

func summaryToDTO(s pantry.ItemSummary, batches []entity.Batch) dto.ItemSummaryDTO {
	out := dto.ItemSummaryDTO{
		ID:             s.ItemID,
		Name:           s.Name,
		Unit:           s.Unit,
		Supermarket:    s.Supermarket,
		IsBasic:        s.IsBasic,
		TotalQuantity:  s.TotalQuantity,
		MinThreshold:   s.MinThreshold,
		EarliestExpiry: s.EarliestExpiry,
		HasOpenBatch:   s.HasOpenBatch,
		PerLocation:    s.PerLocation,
		BatchCounts:    s.Counts,
		BatchLabel:     s.CountsLabel,
		Status:         s.Status,
		Batches:        make([]dto.BatchDTO, 0, len(batches)),
	}
	for _, b := range batches {
		out.Batches = append(out.Batches, dto.BatchDTO{
			BatchID:        b.BatchID,
			Quantity:       b.Quantity,
			ExpirationDate: b.ExpirationDate,
			Opened:         b.Opened,
			LocationID:     b.LocationID,
		})
	}
	return out
}
