package pantry

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jcastano/despensa-api/internal/domain/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Razones de sugerencia de compra.
const (
	SuggestionReasonEmpty    = "EMPTY"
	SuggestionReasonBelowMin = "BELOW_MIN"
)

// unassignedSupermarketLabel etiqueta del grupo de productos sin supermercado.
const unassignedSupermarketLabel = "Sin supermercado"

// Suggestion sugerencia de compra derivada; nunca se persiste.
type Suggestion struct {
	ItemID            string
	ItemName          string
	Unit              string
	Reason            string
	SuggestedQuantity decimal.Decimal
	CurrentQuantity   decimal.Decimal
	MinThreshold      decimal.Decimal
	Supermarket       string
}

// SuggestionGroup sugerencias agrupadas por supermercado.
type SuggestionGroup struct {
	Supermarket string
	Suggestions []Suggestion
}

var titleCaser = cases.Title(language.Spanish)

// SuggestionFor evalúa un producto contra sus reglas de reposición.
//
// Total ≤ 0 → EMPTY con cantidad max(umbral, 1): nunca se sugiere comprar
// cero. Umbral configurado y total por debajo → BELOW_MIN con cantidad
// umbral − total (si el cálculo queda en ≤ 0 cae al umbral, y 1 es el piso
// absoluto). El resto no sugiere nada.
//
// includeBasics controla la rama de productos básicos vacíos sin umbral
// (predicado AutoSuggest); los productos con umbral explícito sugieren
// siempre que la regla dispare.
func SuggestionFor(it entity.Item, includeBasics bool) (Suggestion, bool) {
	total := SumQuantities(it.Batches)
	threshold := RoundQuantity(it.MinThreshold)
	hasThreshold := threshold.GreaterThan(decimal.Zero)

	eligible := hasThreshold || (includeBasics && AutoSuggest(it.IsBasic, total, threshold))
	if !eligible {
		return Suggestion{}, false
	}

	s := Suggestion{
		ItemID:          it.ID,
		ItemName:        it.Name,
		Unit:            it.Unit,
		CurrentQuantity: total,
		MinThreshold:    threshold,
		Supermarket:     strings.TrimSpace(it.Supermarket),
	}

	one := decimal.NewFromInt(1)
	switch {
	case total.LessThanOrEqual(decimal.Zero):
		s.Reason = SuggestionReasonEmpty
		s.SuggestedQuantity = decimal.Max(threshold, one)
	case hasThreshold && total.LessThan(threshold):
		s.Reason = SuggestionReasonBelowMin
		qty := threshold.Sub(total)
		if qty.LessThanOrEqual(decimal.Zero) {
			qty = threshold
		}
		if qty.LessThanOrEqual(decimal.Zero) {
			qty = one
		}
		s.SuggestedQuantity = RoundQuantity(qty)
	default:
		return Suggestion{}, false
	}
	return s, true
}

// BuildSuggestions evalúa todos los productos y agrupa las sugerencias por
// supermercado normalizado (insensible a mayúsculas). Los productos sin
// supermercado caen en el grupo "sin asignar", ordenado de último; el resto
// se ordena alfabéticamente por etiqueta.
func BuildSuggestions(items []entity.Item, includeBasics bool) []SuggestionGroup {
	byKey := make(map[string]*SuggestionGroup)
	for _, it := range items {
		s, ok := SuggestionFor(it, includeBasics)
		if !ok {
			continue
		}
		key := strings.ToLower(s.Supermarket)
		g, exists := byKey[key]
		if !exists {
			label := unassignedSupermarketLabel
			if s.Supermarket != "" {
				label = titleCaser.String(s.Supermarket)
			}
			g = &SuggestionGroup{Supermarket: label}
			byKey[key] = g
		}
		g.Suggestions = append(g.Suggestions, s)
	}

	groups := make([]SuggestionGroup, 0, len(byKey))
	for key, g := range byKey {
		if key == "" {
			continue
		}
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Supermarket < groups[j].Supermarket
	})
	if g, ok := byKey[""]; ok {
		groups = append(groups, *g)
	}
	return groups
}
