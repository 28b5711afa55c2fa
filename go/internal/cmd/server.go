package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcdev12/weblurk/go/internal/admins"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/nats-io/nats.go"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(port string, services *Services, stores *Stores, nc *nats.Conn) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	// Register services
	registerServices(mux, services)

	// File uploads and downloads
	registerFileHandlers(mux, services)

	// Add health check endpoint
	setupHealthCheck(mux, services, stores, nc)

	// Authenticate admins, then wrap with CORS
	handler := c.Handler(services.AdminsApp.Middleware(mux))

	// Setup HTTP/2 server
	return &http.Server{
		Addr:              ":" + port,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	// Register lurk service
	lurkServicePath, lurkServiceHandler := weblurkv1.NewLurkServiceHandler(services.Lurk)
	mux.Handle(lurkServicePath, lurkServiceHandler)

	// Register viewer service
	viewerServicePath, viewerServiceHandler := weblurkv1.NewViewerServiceHandler(services.Viewers)
	mux.Handle(viewerServicePath, viewerServiceHandler)

	// Register ranking service
	rankingServicePath, rankingServiceHandler := weblurkv1.NewRankingServiceHandler(services.Ranking)
	mux.Handle(rankingServicePath, rankingServiceHandler)

	// Register agenda service
	agendaServicePath, agendaServiceHandler := weblurkv1.NewAgendaServiceHandler(services.Agenda)
	mux.Handle(agendaServicePath, agendaServiceHandler)

	// Register admin service
	adminServicePath, adminServiceHandler := weblurkv1.NewAdminServiceHandler(services.Admins)
	mux.Handle(adminServicePath, adminServiceHandler)
}

func registerFileHandlers(mux *http.ServeMux, services *Services) {
	mux.Handle("GET /export/ranking", admins.RequireAdminHandler(services.Ranking.ExportHandler()))
	mux.Handle("GET /export/agenda", admins.RequireAdminHandler(services.Agenda.ExportHandler()))
	mux.Handle("POST /agenda/upload", admins.RequireAdminHandler(services.Agenda.UploadHandler()))
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	NATS   string `json:"nats"`
	Timers int    `json:"timers"`
}

func setupHealthCheck(mux *http.ServeMux, services *Services, stores *Stores, nc *nats.Conn) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status: "ok",
			Store:  "ok",
			NATS:   "disabled",
			Timers: services.Scheduler.Len(),
		}
		status := http.StatusOK

		if err := stores.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check store ping failed")
			resp.Status = "degraded"
			resp.Store = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if nc != nil {
			// Publishing is best effort, a lost connection does not fail the check
			resp.NATS = nc.Status().String()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Warn().Err(err).Msg("failed to write health check response")
		}
	})
}
