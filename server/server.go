package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anganwadi/config"
	"anganwadi/core/program"
	"anganwadi/db"
	"anganwadi/logger"
	"anganwadi/model"
	"anganwadi/repository"
	"anganwadi/storage"

	"github.com/gorilla/mux"
)

// Start initializes the dependencies and runs the HTTP server until a
// termination signal arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	imageStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize MinIO", logger.ErrorField(err))
	}

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(&model.Program{}); err != nil {
		logger.Fatal("Failed to migrate database schema", logger.ErrorField(err))
	}

	// Redis is optional: without it every read goes straight to MySQL.
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, running without cache", logger.ErrorField(err))
	} else {
		defer db.CloseRedis()
	}

	programRepo := repository.NewMySQLProgramRepository(db.DB)
	programService := program.NewService(programRepo, imageStore)

	apiHandler, err := NewAPIHandler(programService, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize API handler", logger.ErrorField(err))
	}

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/", apiHandler.RootHandler).Methods(http.MethodGet)
	router.HandleFunc("/admin-login", apiHandler.AdminLoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/programs", apiHandler.GetProgramsHandler).Methods(http.MethodGet)
	router.HandleFunc("/add-program", apiHandler.AdminMiddleware(apiHandler.AddProgramHandler)).Methods(http.MethodPost)
	router.HandleFunc("/update-program/{id}", apiHandler.AdminMiddleware(apiHandler.UpdateProgramHandler)).Methods(http.MethodPut)
	router.HandleFunc("/delete-program/{id}", apiHandler.AdminMiddleware(apiHandler.DeleteProgramHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/dashboard-stats", apiHandler.AdminMiddleware(apiHandler.DashboardStatsHandler)).Methods(http.MethodGet)

	// Frontend assets; everything the API doesn't claim falls through here.
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.PublicDir)))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

// corsMiddleware mirrors the permissive CORS policy the frontend relies on.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, adminkey")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
