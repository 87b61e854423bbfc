// Package server exposes the bay-plan service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccgmariano/bayplan/archive"
	"github.com/ccgmariano/bayplan/ingest"
	"github.com/ccgmariano/bayplan/repository"
	"github.com/ccgmariano/bayplan/repository/models"
)

// Store is the subset of the record store the web server reads and writes
// directly; imports go through the ingest coordinator instead.
type Store interface {
	Ping() *repository.RepositoryError
	CreateVoyage(vesselName, voyageCode string) (*models.Voyage, *repository.RepositoryError)
	CreateWorkset(voyageID uint) (*models.Workset, *repository.RepositoryError)
	GetWorkset(id uint) (*models.Workset, *repository.RepositoryError)
	ListOperations(worksetID uint, operationType string) ([]models.Operation, *repository.RepositoryError)
	ListContainers(worksetID uint, bays []int, area string) ([]models.Container, *repository.RepositoryError)
	SetContainerStatus(worksetID uint, containerNo string, done bool) (*models.Container, *repository.RepositoryError)
}

// WebServer handles HTTP requests
type WebServer struct {
	httpAddr    string
	server      *http.Server
	logger      *slog.Logger
	store       Store
	coordinator *ingest.Coordinator
	archive     *archive.Archive
	startTime   time.Time
}

// NewWebServer creates a new web server
func NewWebServer(store Store, coordinator *ingest.Coordinator, arc *archive.Archive, httpPort string, logger *slog.Logger) *WebServer {
	ws := &WebServer{
		httpAddr:    ":" + httpPort,
		logger:      logger,
		store:       store,
		coordinator: coordinator,
		archive:     arc,
		startTime:   time.Now(),
	}

	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", ws.handleHealth)
	r.Get("/db-health", ws.handleDBHealth)

	r.Post("/voyages", ws.handleCreateVoyage)
	r.Post("/worksets", ws.handleCreateWorkset)
	r.Get("/worksets/{worksetID}", ws.handleGetWorkset)

	r.Post("/import/edi", ws.handleImportEDI)
	r.Get("/imports/{importID}/raw", ws.handleRawImport)

	r.Get("/ops-bays", ws.handleOpsBays)
	r.Get("/baygrid", ws.handleBayGrid)

	r.Post("/containers/done", ws.handleContainerDone)
	r.Post("/containers/undone", ws.handleContainerUndone)

	r.Get("/admin/import", ws.handleImportForm)

	ws.server = &http.Server{
		Addr:    ws.httpAddr,
		Handler: r,
	}
	return ws
}

// Handler exposes the route tree, mainly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.server.Handler
}

// Start starts the web server
func (ws *WebServer) Start() error {
	ws.logger.Info("Starting web server", "addr", ws.httpAddr)
	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.logger.Error("web server error", "err", err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the web server
func (ws *WebServer) Shutdown(ctx context.Context) error {
	ws.logger.Info("Shutting down web server")
	return ws.server.Shutdown(ctx)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON sends v as an indented JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(v)
}

// JSONError sends a JSON formatted error response with the given status code and message
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, struct {
		Error string `json:"error"`
	}{Error: message})
}
