package pantry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/despensa-api/internal/domain/entity"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
)

func itemWith(name string, isBasic bool, threshold, qty, supermarket string) entity.Item {
	it := entity.Item{
		ID:           "id-" + name,
		Name:         name,
		IsBasic:      isBasic,
		MinThreshold: dec(threshold),
		Supermarket:  supermarket,
	}
	if qty != "0" {
		it.Batches = []entity.Batch{{BatchID: "b", Quantity: dec(qty)}}
	}
	return it
}

func TestSuggestionFor_AgotadoSugiereElUmbral(t *testing.T) {
	s, ok := pantry.SuggestionFor(itemWith("Leche", true, "3", "0", ""), true)
	require.True(t, ok)
	assert.Equal(t, pantry.SuggestionReasonEmpty, s.Reason)
	assert.True(t, s.SuggestedQuantity.Equal(dec("3")))
	assert.True(t, s.CurrentQuantity.IsZero())
}

func TestSuggestionFor_AgotadoSinUmbralSugiereUno(t *testing.T) {
	s, ok := pantry.SuggestionFor(itemWith("Sal", true, "0", "0", ""), true)
	require.True(t, ok)
	assert.Equal(t, pantry.SuggestionReasonEmpty, s.Reason)
	assert.True(t, s.SuggestedQuantity.Equal(dec("1")), "nunca se sugiere comprar cero")
}

func TestSuggestionFor_BajoUmbralSugiereLaDiferencia(t *testing.T) {
	s, ok := pantry.SuggestionFor(itemWith("Arroz", false, "5", "2", ""), true)
	require.True(t, ok)
	assert.Equal(t, pantry.SuggestionReasonBelowMin, s.Reason)
	assert.True(t, s.SuggestedQuantity.Equal(dec("3")))
}

func TestSuggestionFor_ConStockSuficienteNoSugiere(t *testing.T) {
	_, ok := pantry.SuggestionFor(itemWith("Arroz", true, "3", "5", ""), true)
	assert.False(t, ok)
}

func TestSuggestionFor_IncludeBasicsControlaLosBasicosSinUmbral(t *testing.T) {
	basic := itemWith("Café", true, "0", "0", "")

	_, ok := pantry.SuggestionFor(basic, false)
	assert.False(t, ok, "básico agotado sin umbral solo entra con includeBasics")

	_, ok = pantry.SuggestionFor(basic, true)
	assert.True(t, ok)

	// Con umbral explícito la regla dispara aunque includeBasics sea false.
	s, ok := pantry.SuggestionFor(itemWith("Arroz", false, "5", "2", ""), false)
	require.True(t, ok)
	assert.Equal(t, pantry.SuggestionReasonBelowMin, s.Reason)
}

func TestBuildSuggestions_AgrupaPorSupermercado(t *testing.T) {
	items := []entity.Item{
		itemWith("Leche", true, "3", "0", "éxito"),
		itemWith("Pan", true, "0", "0", ""),
		itemWith("Arroz", false, "5", "2", "Carulla"),
		itemWith("Queso", true, "2", "1", "ÉXITO"),
		itemWith("Agua", false, "0", "9", "Carulla"), // no dispara
	}

	groups := pantry.BuildSuggestions(items, true)
	require.Len(t, groups, 3)

	// Alfabético por etiqueta; "Sin supermercado" siempre de último.
	assert.Equal(t, "Carulla", groups[0].Supermarket)
	assert.Equal(t, "Éxito", groups[1].Supermarket, "la etiqueta se capitaliza")
	assert.Equal(t, "Sin supermercado", groups[2].Supermarket)

	assert.Len(t, groups[1].Suggestions, 2, "mayúsculas distintas son el mismo grupo")
	assert.Len(t, groups[0].Suggestions, 1)
	assert.Equal(t, "Pan", groups[2].Suggestions[0].ItemName)
}
