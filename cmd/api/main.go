package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/shopspring/decimal"

	"github.com/miguelurquijo/menuda/internal/api/handlers"
	"github.com/miguelurquijo/menuda/internal/api/middleware"
	"github.com/miguelurquijo/menuda/internal/blobstore"
	"github.com/miguelurquijo/menuda/internal/config"
	"github.com/miguelurquijo/menuda/internal/invoice"
	"github.com/miguelurquijo/menuda/internal/logger"
	"github.com/miguelurquijo/menuda/internal/store"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Amounts go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := logger.WithContext(context.Background(), log)

	// Open the storage gateway
	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer st.Close()

	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database is unreachable")
	}

	// Pick the blob store backend
	var blobs blobstore.Store
	switch cfg.StorageBackend {
	case config.BackendGCS:
		gcsClient, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage client")
		}
		defer gcsClient.Close()
		blobs = blobstore.NewGCS(gcsClient, cfg.GCSBucket)
		log.Info().Str("bucket", cfg.GCSBucket).Msg("Using GCS attachment storage")
	default:
		blobs = blobstore.NewLocal(cfg.UploadsDir)
		log.Info().Str("dir", cfg.UploadsDir).Msg("Using local attachment storage")
	}

	// Initialize handlers
	usersHandler := handlers.NewUsersHandler(store.NewUserRepo(st), log)
	transactionsHandler := handlers.NewTransactionsHandler(store.NewTransactionRepo(st), log)
	categoriesHandler := handlers.NewCategoriesHandler(store.NewCategoryRepo(st), log)
	vendorsHandler := handlers.NewVendorsHandler(store.NewVendorRepo(st), log)
	attachmentsHandler := handlers.NewAttachmentsHandler(blobs, log)
	invoicesHandler := handlers.NewInvoicesHandler(
		invoice.NewPipeline(invoice.NewGemini(cfg.GeminiModel), log), log)

	// Create router
	mux := http.NewServeMux()

	// Users endpoints
	mux.HandleFunc("/api/users/check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			usersHandler.CheckUser(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			userID := strings.TrimPrefix(r.URL.Path, "/api/users/")
			if userID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "User ID is required")
				return
			}
			usersHandler.GetUser(w, r, userID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Transactions endpoints
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.ListTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		transactionID := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if transactionID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.GetTransaction(w, r, transactionID)
		case http.MethodPut:
			transactionsHandler.UpdateTransaction(w, r, transactionID)
		case http.MethodDelete:
			transactionsHandler.DeleteTransaction(w, r, transactionID)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Categories endpoints
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categoriesHandler.ListCategories(w, r)
		case http.MethodPost:
			categoriesHandler.CreateCategory(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Vendors endpoints
	mux.HandleFunc("/api/vendors", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			vendorsHandler.ListVendors(w, r)
		case http.MethodPost:
			vendorsHandler.CreateVendor(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Attachments endpoint
	mux.HandleFunc("/api/attachments/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			attachmentsHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Invoice extraction endpoint
	mux.HandleFunc("/api/invoices/process", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			invoicesHandler.Process(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Locally stored attachments are served back at their returned urls.
	if cfg.StorageBackend == config.BackendLocal {
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	// Health check endpoint
	mux.HandleFunc("/health", handlers.Health)

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
