package main

import (
	"AyurClinic/cache"
	"AyurClinic/config"
	"AyurClinic/database"
	"AyurClinic/routes"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"
)

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.InitDB(context.Background(), config.DBURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := database.InitializeRedis(database.DefaultRedisConfig(config.RedisAddress)); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	cache, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	handler, err := routes.SetupRoutes(cache, config, db)
	if err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	srv := &http.Server{
		Addr:           ":8930",
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Println("Starting server on :8930")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait()
	log.Println("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}

	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	symmetricKey := os.Getenv("SYMMETRIC_KEY")
	if len(symmetricKey) != 32 {
		return nil, errors.New("SYMMETRIC_KEY must be exactly 32 bytes")
	}

	smtpPort, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	lockoutThreshold, err := intEnv("LOCKOUT_THRESHOLD", config.DefaultLockoutThreshold)
	if err != nil {
		return nil, err
	}
	lockoutMinutes, err := intEnv("LOCKOUT_MINUTES", int(config.DefaultLockoutDuration.Minutes()))
	if err != nil {
		return nil, err
	}
	minMinutes, err := intEnv("MIN_APPOINTMENT_MINUTES", config.DefaultMinAppointmentMinutes)
	if err != nil {
		return nil, err
	}
	maxMinutes, err := intEnv("MAX_APPOINTMENT_MINUTES", config.DefaultMaxAppointmentMinutes)
	if err != nil {
		return nil, err
	}

	return &config.AppConfig{
		DBURL:        dbURL,
		RedisAddress: redisAddress,
		SymmetricKey: symmetricKey,

		TokenExpiry:      config.DefaultTokenExpiry,
		LockoutThreshold: lockoutThreshold,
		LockoutDuration:  time.Duration(lockoutMinutes) * time.Minute,

		MinAppointmentMinutes: minMinutes,
		MaxAppointmentMinutes: maxMinutes,

		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          smtpPort,
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		ClinicEmail:       os.Getenv("CLINIC_EMAIL"),
		AppointmentsEmail: os.Getenv("APPOINTMENTS_EMAIL"),
	}, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid value for " + name)
	}
	return value, nil
}
