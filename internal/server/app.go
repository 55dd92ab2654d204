// Package server initializes and runs the administration backend: it opens
// the database, runs migrations, wires services to the HTTP API, and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/lyonblue/PHADMINISTRATION/internal/logging"
	"github.com/lyonblue/PHADMINISTRATION/internal/mailx"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/config"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/httpapi"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/repositories/repomanager"
	"github.com/lyonblue/PHADMINISTRATION/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var mailer mailx.Mailer
	if cfg.SMTPHost != "" {
		mailer = mailx.NewSMTPMailer(mailx.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		}, logger)
	} else {
		// No SMTP configured: log outbound mail instead of failing requests.
		mailer = mailx.NewLogMailer(logger)
	}

	as := services.NewAuthService(db, rm, cfg)
	ps := services.NewProfileService(db, rm)
	ns := services.NewNewsService(db, rm)
	ts := services.NewTestimonialService(db, rm)
	avs := services.NewAvatarService(cfg)

	srv := httpapi.NewServer(cfg, logger, as, ps, ns, ts, avs, mailer)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
