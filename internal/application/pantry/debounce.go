package pantry

import (
	"context"
	"sync"
	"time"

	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/repository"
	"github.com/jcastano/despensa-api/pkg/logger"
)

// SaveScheduler coalesce escrituras optimistas: varias mutaciones rápidas al
// mismo producto colapsan en el último estado pendiente y una sola escritura
// tras una pausa corta. El timer de un producto se cancela y reprograma en
// cada mutación nueva; también puede cancelarse explícitamente (p. ej. al
// cerrar un modal descartando los cambios) para que una escritura vieja no
// pise un guardado posterior.
//
// Decisión registrada en DESIGN.md: si la escritura diferida falla, se
// registra el error y el estado pendiente se descarta; no hay reintento.
type SaveScheduler struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	pending  map[string]*entity.Item
	delay    time.Duration
	itemRepo repository.ItemRepository
	log      *logger.Logger
}

// NewSaveScheduler construye el scheduler con la pausa de coalescencia.
func NewSaveScheduler(delay time.Duration, itemRepo repository.ItemRepository, log *logger.Logger) *SaveScheduler {
	return &SaveScheduler{
		timers:   make(map[string]*time.Timer),
		pending:  make(map[string]*entity.Item),
		delay:    delay,
		itemRepo: itemRepo,
		log:      log,
	}
}

// Schedule registra el estado más reciente del producto y reinicia su timer.
// La última mutación local siempre gana sobre una escritura en vuelo más lenta.
func (s *SaveScheduler) Schedule(item *entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[item.ID]; ok {
		t.Stop()
	}
	s.pending[item.ID] = item
	id := item.ID
	s.timers[id] = time.AfterFunc(s.delay, func() { s.fire(id) })
}

// Peek devuelve una copia del estado optimista pendiente de un producto, si
// existe. Las mutaciones leen a través de aquí: dos ajustes rápidos al mismo
// producto parten cada uno del último estado calculado, no del persistido, y
// el guardado coalescido lleva ambos deltas.
func (s *SaveScheduler) Peek(itemID string) (*entity.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.pending[itemID]
	if !ok {
		return nil, false
	}
	cp := *item
	cp.Batches = append([]entity.Batch(nil), item.Batches...)
	return &cp, true
}

// Cancel descarta el guardado pendiente de un producto. Devuelve true si
// había uno programado.
func (s *SaveScheduler) Cancel(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[itemID]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, itemID)
	delete(s.pending, itemID)
	return true
}

// FlushAll dispara todos los guardados pendientes de inmediato (apagado).
func (s *SaveScheduler) FlushAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.timers))
	for id, t := range s.timers {
		t.Stop()
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.fire(id)
	}
}

func (s *SaveScheduler) fire(itemID string) {
	s.mu.Lock()
	item, ok := s.pending[itemID]
	delete(s.pending, itemID)
	delete(s.timers, itemID)
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.itemRepo.Save(ctx, item); err != nil {
		s.log.Error().Err(err).Str("item_id", itemID).Msg("guardado diferido falló; estado pendiente descartado")
	}
}
