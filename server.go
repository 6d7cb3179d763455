package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ukane-philemon/educonnect/api"
	"github.com/ukane-philemon/educonnect/internal/config"
	"github.com/ukane-philemon/educonnect/internal/course"
	"github.com/ukane-philemon/educonnect/internal/db"
	"github.com/ukane-philemon/educonnect/internal/grade"
	"github.com/ukane-philemon/educonnect/internal/logger"
	"github.com/ukane-philemon/educonnect/internal/student"
	"github.com/ukane-philemon/educonnect/internal/trainer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var isDevMode bool
	flag.BoolVar(&isDevMode, "dev", false, "Run server in development mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load error", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	dbName := cfg.Database.Name
	if isDevMode {
		dbName = "dev_" + dbName
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, dbName, log); err != nil {
		log.Error("EduConnect shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("EduConnect shutdown successfully")
}

func run(ctx context.Context, cfg *config.Config, dbName string, log *slog.Logger) error {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout())
	database, err := db.NewMongoDB(connectCtx, dbName, cfg.Database.URL, cfg.Database.ConnectTimeout(), log)
	cancel()
	if err != nil {
		return err
	}

	defer func() {
		dbShutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.ShutdownMongoDB(dbShutdownCtx, database, log); err != nil {
			log.Error("db.ShutdownMongoDB error", "error", err)
		}
	}()

	trainers, err := trainer.NewRepository(ctx, database)
	if err != nil {
		return err
	}

	students, err := student.NewRepository(ctx, database)
	if err != nil {
		return err
	}

	courses := course.NewRepository(database, trainers)

	srv, err := api.NewServer(&api.Repositories{
		Trainers: trainers,
		Courses:  courses,
		Students: students,
		Grades:   grade.NewRepository(database, students, courses),
	}, api.Options{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Ping: func(ctx context.Context) error {
			return db.Ping(ctx, database.Client())
		},
	}, log)
	if err != nil {
		return err
	}

	readTimeout, writeTimeout, idleTimeout := cfg.Server.Timeouts()
	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	// Shut the HTTP server down once SIGINT or SIGTERM is received.
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("EduConnect has started successfully", "url", "http://localhost:"+cfg.Server.Port)

	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
