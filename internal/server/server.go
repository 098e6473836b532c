// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"github.com/agrotechfields/islehub/api"
	"github.com/agrotechfields/islehub/internal/config"
	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/monitoring"
	"github.com/agrotechfields/islehub/internal/repository/postgres"
	"github.com/agrotechfields/islehub/internal/token"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
	appDB      database.DB
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config:     cfg,
		monitoring: monitoring.NewService(),
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.appDB = initAppDB(s.config.Database.AppDB)
	s.hubservice = buildHubService(s.appDB)

	if err := s.hubservice.Validate(); err != nil {
		return fmt.Errorf("service wiring incomplete: %w", err)
	}

	s.setupEventHandlers()

	codec := token.NewCodec([]byte(s.config.Auth.TokenSecret), s.config.Auth.TokenValidity)
	router := api.NewRouter(s.hubservice, codec, s.monitoring, s.config)

	handler := handlers.CombinedLoggingHandler(os.Stdout,
		handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(router))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.appDB != nil {
		if err := s.appDB.Close(); err != nil {
			nuts.L.Errorf("[Server] Error closing database: %v", err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupEventHandlers() {
	s.hubservice.OnEvent("isle.created", func(id string) {
		s.monitoring.RecordEvent("isle_created", map[string]string{
			"isle_id": id,
		})
	})

	s.hubservice.OnEvent("isle.deleted", func(id string) {
		nuts.L.Infof("[Server] Isle %s deleted, existing measures retained", id)
		s.monitoring.RecordEvent("isle_deleted", map[string]string{
			"isle_id": id,
		})
	})

	s.hubservice.OnEvent("measure.created", func(id string) {
		s.monitoring.RecordEvent("measure_created", map[string]string{
			"measure_id": id,
		})
	})

	s.hubservice.OnEvent("user.created", func(id string) {
		s.monitoring.RecordEvent("user_created", map[string]string{
			"user_id": id,
		})
	})

	s.hubservice.OnEvent("user.deleted", func(id string) {
		s.monitoring.RecordEvent("user_deleted", map[string]string{
			"user_id": id,
		})
	})

	s.hubservice.OnEvent("image.created", func(id string) {
		s.monitoring.RecordEvent("image_created", map[string]string{
			"image_id": id,
		})
	})
}

// buildHubService wires the repositories into the hub service
func buildHubService(appDB database.DB) *hubservice.HubService {
	users := postgres.NewUserRepository(appDB)
	isles := postgres.NewIsleRepository(appDB)
	measures := postgres.NewMeasureRepository(appDB)
	images := postgres.NewImageRepository(appDB)

	return hubservice.New(users, isles, measures, images)
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to AppDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping AppDB: %v", err)
	}

	return wrappedDB
}
