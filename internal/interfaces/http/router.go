package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/despensa-api/internal/application/assistant"
	"github.com/jcastano/despensa-api/internal/application/auth"
	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *apppantry.InventoryUseCase
	SuggestUC   *apppantry.SuggestionUseCase
	ExpiryScan  *apppantry.ExpiryScanUseCase
	AssistantUC *assistant.ChatUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.InventoryUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/expiring", itemHandler.Expiring)
	items.Post("/import", itemHandler.Import)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Patch("/:id/quantity", itemHandler.Adjust)
	items.Post("/:id/move", itemHandler.Move)
	items.Post("/:id/open", itemHandler.Open)
	items.Delete("/:id/pending-save", itemHandler.CancelPendingSave)

	// Vista por ubicación (la app navega por despensa/nevera/alacena).
	protected.Get("/locations/:id/items", itemHandler.ByLocation)

	// Shopping (protegido)
	shopping := protected.Group("/shopping")
	shoppingHandler := NewShoppingHandler(deps.SuggestUC)
	shopping.Get("/suggestions", shoppingHandler.Suggestions)
	shopping.Get("/suggestions/pdf", shoppingHandler.PDF)

	// Events (protegido)
	events := protected.Group("/events")
	eventHandler := NewEventHandler(deps.InventoryUC, deps.ExpiryScan)
	events.Get("/", eventHandler.History)
	events.Post("/expiry-scan", eventHandler.ExpiryScan)

	// Assistant (protegido)
	assistantGroup := protected.Group("/assistant")
	assistantHandler := NewAssistantHandler(deps.AssistantUC)
	assistantGroup.Post("/chat", assistantHandler.Chat)
}
