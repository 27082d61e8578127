package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/chapa-pos/api/internal/config"
	"github.com/chapa-pos/api/internal/database"
	"github.com/chapa-pos/api/internal/router"
	"github.com/chapa-pos/api/internal/store"
	"github.com/chapa-pos/api/internal/ws"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Hydrate the in-memory state before serving any request.
	orderRepo := database.NewOrderRepo(pool)
	orders := store.NewOrderStore(orderRepo)
	persisted, err := orderRepo.LoadOrders(ctx)
	if err != nil {
		log.Fatalf("load orders: %v", err)
	}
	orders.Load(persisted)
	log.Printf("Loaded %d orders", len(persisted))

	settingsRepo := database.NewSettingsRepo(pool)
	settings := store.NewSettingsStore(settingsRepo)
	grouping, err := settingsRepo.LoadGrouping(ctx)
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	settings.Load(grouping)

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, pool, orders, settings, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
