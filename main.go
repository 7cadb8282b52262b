package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/hashemm621/AssetVerse-Server/auth"
	"github.com/hashemm621/AssetVerse-Server/config"
	"github.com/hashemm621/AssetVerse-Server/database"
	"github.com/hashemm621/AssetVerse-Server/handlers"
	"github.com/hashemm621/AssetVerse-Server/middleware"
	"github.com/hashemm621/AssetVerse-Server/payments"
	"github.com/hashemm621/AssetVerse-Server/routes"
	"github.com/hashemm621/AssetVerse-Server/store"
	"github.com/hashemm621/AssetVerse-Server/websocket"
	"github.com/hashemm621/AssetVerse-Server/workflow"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	cfg := config.Load()

	// Database connection
	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	stores := store.New(client.Database(cfg.MongoDB))

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := stores.EnsureIndexes(bootCtx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if err := stores.SeedPlans(bootCtx); err != nil {
		log.Fatalf("Failed to seed package plans: %v", err)
	}
	bootCancel()

	// Wire services
	tokens := auth.NewTokenService(cfg.JWTKey, cfg.JWTExpiration)

	users := workflow.NewUsers(stores.Users)
	inventory := workflow.NewInventory(stores.Assets)
	affiliations := workflow.NewAffiliations(stores.Affiliations, stores.Users, stores.Assignments)
	assignments := workflow.NewAssignments(stores.Assignments, inventory, affiliations)
	packages := workflow.NewPackages(stores.Users, stores.Affiliations, stores.Payments, stores.Plans)
	requests := workflow.NewRequests(stores.Requests, stores.Assets, stores.Assignments, stores.Users, affiliations, packages)

	h := &handlers.Handler{
		Users:        users,
		Inventory:    inventory,
		Assignments:  assignments,
		Affiliations: affiliations,
		Requests:     requests,
		Packages:     packages,
		Tokens:       tokens,
		Checkout:     payments.NewHostedCheckout(cfg.CheckoutBaseURL),
		Hub:          websocket.NewHub(tokens),
		Mongo:        client,
	}

	// Router setup
	router := mux.NewRouter()
	routes.RegisterRoutes(router, h, tokens)

	// Global middlewares (order matters!)
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS(cfg.ClientOrigin))

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("AssetVerse server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	database.Disconnect(client)
	log.Println("Server stopped gracefully")
}
