package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapa-pos/api/internal/cart"
	"github.com/chapa-pos/api/internal/config"
	"github.com/chapa-pos/api/internal/database"
	"github.com/chapa-pos/api/internal/handler"
	mw "github.com/chapa-pos/api/internal/middleware"
	"github.com/chapa-pos/api/internal/print"
	"github.com/chapa-pos/api/internal/service"
	"github.com/chapa-pos/api/internal/store"
	"github.com/chapa-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Authentication and role checks are applied per group; the cart, order and
// settings state lives in the passed stores.
func New(cfg *config.Config, pool *pgxpool.Pool, orders *store.OrderStore, settings *store.SettingsStore, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(database.NewUserRepo(pool), cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/kds", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	products := database.NewProductRepo(pool)
	notifier := ws.NewNotifier(hub)
	checkout := service.NewCheckoutService(orders, print.LogSink{}, notifier)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Catalog
		productHandler := handler.NewProductHandler(products)
		r.Route("/products", func(r chi.Router) {
			productHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole("ADMIN"))
				productHandler.RegisterAdminRoutes(r)
			})
		})

		// Carts
		cartHandler := handler.NewCartHandler(cart.NewSessions(), products, checkout)
		r.Route("/carts/{terminal}", cartHandler.RegisterRoutes)

		// Orders
		orderHandler := handler.NewOrderHandler(orders, notifier)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole("ADMIN"))
				orderHandler.RegisterAdminRoutes(r)
			})
		})

		// Kitchen display board
		kdsHandler := handler.NewKDSHandler(orders, settings)
		kdsHandler.RegisterRoutes(r)

		// Settings
		settingsHandler := handler.NewSettingsHandler(settings)
		settingsHandler.RegisterRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole("ADMIN"))
			settingsHandler.RegisterAdminRoutes(r)
		})

		// Reports (admin only)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole("ADMIN"))
			reportsHandler := handler.NewReportsHandler(orders, products)
			reportsHandler.RegisterRoutes(r)
		})
	})

	return r
}
