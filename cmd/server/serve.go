package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/artem13815/jobboard/docs"

	// внутренние пакеты
	apihttp "github.com/artem13815/jobboard/api/http"
	"github.com/artem13815/jobboard/api/http/handlers"
	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/analytics"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/candidate"
	"github.com/artem13815/jobboard/pkg/config"
	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/health"
	"github.com/artem13815/jobboard/pkg/health/checkers"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/listing"
	"github.com/artem13815/jobboard/pkg/profile"
	"github.com/artem13815/jobboard/pkg/relation"
	pgrepo "github.com/artem13815/jobboard/pkg/repository/postgres"
	"github.com/artem13815/jobboard/pkg/security/jwt"
	"github.com/artem13815/jobboard/pkg/storage/files"
	"github.com/artem13815/jobboard/pkg/storage/postgres"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply migrations on start")
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	// Подключение к PostgreSQL
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		return err
	}
	defer pool.Close()
	if !skipMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			return err
		}
	}

	readinessCheckers := []health.Checker{checkers.NewPostgresChecker(pool)}

	// События необязательны: без REDIS_URL ничего не публикуется.
	var pub events.Publisher = events.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := events.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		pub = events.NewRedisPublisher(rdb)
		readinessCheckers = append(readinessCheckers, checkers.NewRedisChecker(rdb))
		log.Info("publishing events to redis")
	}

	// Сборка зависимостей (Clean Architecture)
	userRepo := pgrepo.NewUserRepository(pool)
	jobRepo := pgrepo.NewJobRepository(pool)
	candidateRepo := pgrepo.NewCandidateRepository(pool)
	savedRepo := pgrepo.NewSavedJobRepository(pool)
	appRepo := pgrepo.NewApplicationRepository(pool)
	analyticsRepo := pgrepo.NewAnalyticsRepository(pool)

	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authUC := auth.NewAuthService(userRepo, jwtGen)
	jobUC := job.NewService(jobRepo, cfg.DefaultPageSize)
	candidateUC := candidate.NewService(candidateRepo, files.NewLocal(cfg.UploadDir), jobRepo)
	relationUC := relation.NewService(savedRepo, appRepo, jobRepo, candidateUC, pub, log.Named("relation"))
	listings := listing.NewService(jobRepo, candidateRepo, savedRepo, appRepo)
	stats := profile.NewStatsService(candidateRepo, appRepo, savedRepo)
	analyticsUC := analytics.NewService(analyticsRepo, jobRepo)

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		BodyLimit:             (cfg.MaxUploadMB + 1) << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return presenter.Error(c, fe.Code, fe.Message)
			}
			return presenter.Fail(c, log, err)
		},
	})
	app.Use(apihttp.RequestLogger(log.Named("http")))

	apihttp.Register(app, apihttp.Handlers{
		Auth:       handlers.NewAuthHandler(authUC, log),
		Health:     handlers.NewHealthHandler(health.NewService(readinessCheckers...), log),
		Dashboard:  handlers.NewDashboardHandler(listings, candidateUC, stats, cfg.DefaultPageSize, log),
		Jobs:       handlers.NewJobHandler(jobUC, log),
		Candidates: handlers.NewCandidateHandler(candidateUC, cfg.MaxUploadMB, log),
		Relations:  handlers.NewRelationHandler(relationUC, log),
		Analytics:  handlers.NewAnalyticsHandler(analyticsUC, log),
	}, jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errc := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", cfg.Port))
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
