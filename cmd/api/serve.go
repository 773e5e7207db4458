// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/folio/internal/api"
	"github.com/taibuivan/folio/internal/core/achievement"
	"github.com/taibuivan/folio/internal/core/blog"
	"github.com/taibuivan/folio/internal/core/certification"
	"github.com/taibuivan/folio/internal/core/contact"
	"github.com/taibuivan/folio/internal/core/dashboard"
	"github.com/taibuivan/folio/internal/core/media"
	"github.com/taibuivan/folio/internal/core/message"
	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/core/setting"
	"github.com/taibuivan/folio/internal/core/site"
	"github.com/taibuivan/folio/internal/core/skill"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/mail"
	"github.com/taibuivan/folio/internal/platform/metrics"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/platform/migration"
	pgstore "github.com/taibuivan/folio/internal/platform/postgres"
	redisstore "github.com/taibuivan/folio/internal/platform/redis"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/storage"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/internal/users/authctx"
	"github.com/taibuivan/folio/internal/users/role"
)

// startupTimeout bounds connecting to every backing service.
const startupTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server.

Startup connects to PostgreSQL and Redis, applies pending migrations,
wires every handler and serves until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

/*
runServe boots the server.

# Startup Sequence

 1. Load configuration and the structured logger.
 2. Connect to PostgreSQL (pgxpool) and Redis.
 3. Run database migrations (idempotent).
 4. Build the token service, the mailer and object storage.
 5. Wire repositories, services and HTTP handlers.
 6. Serve with graceful shutdown.
*/
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	log.Info("service_initializing", slog.String("environment", cfg.Environment))

	rootContext := cmd.Context()
	startupContext, startupCancel := context.WithTimeout(rootContext, startupTimeout)
	defer startupCancel()

	// 1. PostgreSQL
	pool, err := pgstore.NewPool(startupContext, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()
	prometheus.MustRegister(metrics.NewPoolStatsCollector(pool))

	// 2. Redis
	rdb, err := redisstore.NewClient(startupContext, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// 3. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// 4. Infrastructure
	tokens, err := newTokenService(cfg)
	if err != nil {
		return fmt.Errorf("initialize token service: %w", err)
	}

	sender := newMailer(cfg, log)

	objects, err := newObjectStorage(startupContext, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize object storage: %w", err)
	}

	// 5. Domain wiring
	factory, handlers := wire(rootContext, cfg, log, pool, rdb, tokens, sender, objects)

	server := api.NewServer(rootContext, cfg, log, factory, handlers)

	// 6. Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootContext.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("serve http: %w", err)
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped_cleanly")
	return nil
}

// # Wiring

// wire builds every repository, service and handler.
func wire(
	rootContext context.Context,
	cfg *config.Config,
	log *slog.Logger,
	pool *pgxpool.Pool,
	rdb *goredis.Client,
	tokens *sec.TokenService,
	sender mail.Sender,
	objects storage.ObjectStorage,
) (*authctx.Factory, api.Handlers) {

	// Repositories
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(rdb)
	verificationRepository := auth.NewVerificationTokenRepository(rdb)
	roleRepository := role.NewPostgresRepository(pool)

	projectRepository := project.NewPostgresRepository(pool)
	achievementRepository := achievement.NewPostgresRepository(pool)
	certificationRepository := certification.NewPostgresRepository(pool)
	skillRepository := skill.NewPostgresRepository(pool)
	blogRepository := blog.NewPostgresRepository(pool)
	messageRepository := message.NewPostgresRepository(pool)
	settingRepository := setting.NewPostgresRepository(pool)

	// Identity
	authService := auth.NewService(
		userRepository,
		sessionRepository,
		verificationRepository,
		tokens,
		sender,
		auth.Config{
			RequireEmailConfirmation: cfg.RequireEmailConfirmation,
			PublicBaseURL:            cfg.PublicBaseURL,
			SiteTitle:                constants.DefaultSiteTitle,
		},
		log,
	)
	resolver := role.NewResolver(roleRepository, log)
	factory := authctx.NewFactory(authService, resolver, log)

	roleService := role.NewService(roleRepository, userRepository, log)
	accountService := account.NewService(userRepository, sessionRepository, log)

	// Content
	projectService := project.NewService(projectRepository, log)
	achievementService := achievement.NewService(achievementRepository, log)
	certificationService := certification.NewService(certificationRepository, log)
	skillService := skill.NewService(skillRepository, log)
	blogService := blog.NewService(blogRepository, blog.NewSanitizer(), log)
	messageService := message.NewService(messageRepository, log)
	settingService := setting.NewService(settingRepository, log)
	mediaService := media.NewService(objects, log)

	contactService := contact.NewService(messageService, settingService, sender,
		contact.Config{OwnerEmail: cfg.ContactOwnerEmail}, log)

	dashboardService := dashboard.NewService(dashboard.Sources{
		Projects:       projectService,
		Achievements:   achievementService,
		Certifications: certificationService,
		Posts:          blogService,
		Inbox:          messageService,
	}, log)

	siteService := site.NewService(site.Sources{
		Settings:       settingService,
		Projects:       projectService,
		Skills:         skillService,
		Certifications: certificationService,
		Achievements:   achievementService,
	})

	// Health checks
	checks := api.HealthDependencies{
		CheckDatabase: func(context context.Context) error {
			return pgstore.Ping(context, pool)
		},
		CheckCache: func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		},
	}
	if minio, ok := objects.(*storage.MinioClient); ok {
		checks.CheckStorage = minio.Ping
	}
	liveness, readiness := api.NewHealthHandlers(checks, log)

	cookies := auth.CookieConfig{Secure: cfg.CookieSecure}
	strict := middleware.RateLimitWith(rootContext, middleware.StrictProfile)

	return factory, api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Session:       authctx.NewHandler(cookies, middleware.CSRFConfig{CookieSecure: cfg.CookieSecure}, strict),
		Auth:          auth.NewHandler(authService),
		Account:       account.NewHandler(accountService),
		Role:          role.NewHandler(roleService),
		Site:          site.NewHandler(siteService),
		Contact:       contact.NewHandler(contactService),
		Project:       project.NewHandler(projectService),
		Achievement:   achievement.NewHandler(achievementService),
		Certification: certification.NewHandler(certificationService),
		Skill:         skill.NewHandler(skillService),
		Blog:          blog.NewHandler(blogService),
		Message:       message.NewHandler(messageService),
		Setting:       setting.NewHandler(settingService),
		Media:         media.NewHandler(mediaService),
		Dashboard:     dashboard.NewHandler(dashboardService),
	}
}

// # Infrastructure

// newTokenService signs access tokens with RSA when both key paths are set and with HS256 otherwise.
func newTokenService(cfg *config.Config) (*sec.TokenService, error) {
	if cfg.UsesRSAKeys() {
		return sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	}
	return sec.NewHMACTokenService(cfg.SessionSecret, constants.AuthIssuer)
}

// newMailer returns the Resend sender, or a logging sender when no API key is configured.
func newMailer(cfg *config.Config, log *slog.Logger) mail.Sender {
	if cfg.ResendAPIKey == "" {
		log.Warn("mail_provider_disabled", slog.String("reason", "RESEND_API_KEY is empty"))
		return mail.NewLogSender(log)
	}
	return mail.NewResendSender(mail.ResendConfig{
		APIKey: cfg.ResendAPIKey,
		From:   cfg.MailFrom,
	}, log)
}

// newObjectStorage connects to the media bucket. It returns a nil interface when media is disabled.
func newObjectStorage(context context.Context, cfg *config.Config, log *slog.Logger) (storage.ObjectStorage, error) {
	if !cfg.MediaEnabled() {
		log.Warn("media_storage_disabled", slog.String("reason", "S3_ENDPOINT is empty"))
		return nil, nil
	}

	client, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  cfg.S3Endpoint,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, err
	}

	if err := client.EnsureBucket(context); err != nil {
		return nil, err
	}

	log.Info("media_storage_ready", slog.String("bucket", cfg.S3Bucket))
	return client, nil
}
