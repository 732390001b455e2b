package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"faculty_api/internal/api"
	"faculty_api/internal/api/handler"
	"faculty_api/internal/app/service"
	"faculty_api/internal/app/worker"
	"faculty_api/internal/common/security"
	"faculty_api/internal/domain/repository"
	"faculty_api/internal/platform/database"
	"faculty_api/internal/platform/queue"

	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API and the audit worker",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "Apply pending migrations before serving",
				Value: true,
			},
		},
		Action: func(appCtx *cli.Context) error {
			ctx := appCtx.Context
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			db, err := database.Connect(ctx, cfg.DBConnStr())
			if err != nil {
				return err
			}
			defer db.Close()
			logger.Info().Msg("Database connected")

			if appCtx.Bool("migrate") {
				if err := database.MigrateUp(ctx, db); err != nil {
					return err
				}
				logger.Info().Msg("Migrations applied")
			}

			tokens, err := security.NewTokenManager(cfg.JWTKey(), cfg.JWTExp())
			if err != nil {
				return err
			}

			userRepo := repository.NewPgUserRepository(db)
			teacherRepo := repository.NewPgTeacherRepository(db)
			eventRepo := repository.NewPgAuthEventRepository(db)

			checks := map[string]handler.Pinger{
				"postgres": handler.PingFunc(db.PingContext),
			}

			var audit service.AuditPublisher = service.NoopAuditPublisher{}
			workerCtx, workerCancel := context.WithCancel(ctx)
			defer workerCancel()
			workerDone := make(chan struct{})

			if cfg.AuditEnabled {
				rdb, err := queue.Connect(ctx, queue.Options{
					Addr:     cfg.RedisAddr,
					Password: cfg.RedisPassword,
					DB:       cfg.RedisDB,
				})
				if err != nil {
					return err
				}
				defer rdb.Close()
				logger.Info().Str("addr", cfg.RedisAddr).Msg("Redis connected")

				audit = service.NewRedisAuditPublisher(rdb, cfg.AuditQueueName)
				checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
					return rdb.Ping(ctx).Err()
				})

				auditWorker := worker.NewAuditWorker(rdb, eventRepo, cfg.AuditQueueName, logger)
				go func() {
					defer close(workerDone)
					auditWorker.Start(workerCtx)
				}()
			} else {
				close(workerDone)
				logger.Info().Msg("Auditing disabled")
			}

			authService := service.NewAuthService(userRepo, eventRepo, security.NewPasswordHasher(cfg.BcryptCost), tokens, audit)
			teacherService := service.NewTeacherService(teacherRepo)

			router := api.NewRouter(api.RouterOptions{
				Logger:         logger,
				RequestTimeout: cfg.RequestTimeout,
				AllowedOrigins: cfg.CORSAllowedOrigins,
				HealthChecks:   checks,
			}, authService, teacherService, tokens)

			server := &http.Server{
				Addr:         ":" + cfg.APIPort,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: cfg.RequestTimeout + 5*time.Second,
				IdleTimeout:  120 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info().Str("port", cfg.APIPort).Msg("Server starting")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			select {
			case <-ctx.Done():
			case err := <-serverErr:
				if err != nil {
					return err
				}
			}

			logger.Info().Msg("Shutting down server...")
			workerCancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			<-workerDone

			logger.Info().Msg("Server and worker stopped gracefully")
			return nil
		},
	}
}
