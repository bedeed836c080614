// main.go - Entry point for the document management API server

package main // Declares the package name

import ( // Import required packages
	"context"   // Shutdown deadline
	"errors"    // For server-closed checks
	"net/http"  // HTTP server
	"os"        // Process signals and stdout
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"go-dms-backend/auth"     // Token issue/verify
	"go-dms-backend/config"   // Project config management
	"go-dms-backend/database" // Database and redis connections
	"go-dms-backend/handlers" // HTTP handlers and router

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

func main() { // Main function, program entry point
	// STEP 1: Load configuration and set up logging
	cfg := config.Load() // Load configuration from env / .env

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	gin.SetMode(gin.ReleaseMode)

	// STEP 2: Establish connections
	db, err := database.Connect(cfg) // Connect, migrate and seed roles
	if err != nil {
		log.WithError(err).Fatal("DB connection error")
	}

	var revoked auth.Revoker // Token denylist is optional
	if rdb := database.NewRedisConnection(cfg); rdb != nil {
		denylist := database.NewTokenDenylist(rdb)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := denylist.Ping(ctx)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("Redis connection error")
		}
		revoked = denylist
		defer rdb.Close()
	} else {
		log.Info("REDIS_ADDR not set, logout disabled")
	}
	gate := auth.NewGate(cfg, revoked)

	// STEP 3: Build the router with all routes
	router := handlers.NewRouter(handlers.Deps{
		Config: cfg,
		DB:     db,
		Gate:   gate,
		Logger: log,
	})

	// STEP 4: Start the web server and wait for a shutdown signal
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
