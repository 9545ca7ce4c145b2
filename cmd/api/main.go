package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/lcabrel/botposts-ms-go/internal/cache"
	"github.com/lcabrel/botposts-ms-go/internal/config"
	"github.com/lcabrel/botposts-ms-go/internal/db"
	"github.com/lcabrel/botposts-ms-go/internal/handler/api"
	"github.com/lcabrel/botposts-ms-go/internal/logger"
	cMiddleware "github.com/lcabrel/botposts-ms-go/internal/middleware"
	"github.com/lcabrel/botposts-ms-go/internal/port"
	"github.com/lcabrel/botposts-ms-go/internal/repository/mariadb"
	"github.com/lcabrel/botposts-ms-go/internal/storage"
	"github.com/lcabrel/botposts-ms-go/internal/usecase/deletion"
	"github.com/lcabrel/botposts-ms-go/internal/usecase/grant"
	"github.com/lcabrel/botposts-ms-go/internal/usecase/mediaref"
	"github.com/lcabrel/botposts-ms-go/internal/usecase/submission"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)
	sec := protectedRoutes(r, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBucket(ctx, strg, cfg.MediaBucket)

	refRepo := mariadb.NewMediaReferenceRepository(database.DB)
	subRepo := mariadb.NewSubmissionRepository(database.DB)

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, caching is disabled")
	}

	grantSvc := grant.NewGrantIssuer(strg, cfg.MediaBucket, uuid.NewString)
	sec.Post("/api/get-upload-url", api.GetUploadURLHandler(grantSvc, grant.PurposePostMedia))
	sec.Post("/api/get-avatar-upload-url", api.GetUploadURLHandler(grantSvc, grant.PurposeAvatar))

	registrarSvc := mediaref.NewReferenceRegistrar(refRepo, strg, cfg.MediaBucket)
	sec.Post("/api/register-media", api.RegisterMediaHandler(registrarSvc))

	submitterSvc := submission.NewSubmitter(subRepo, refRepo, ca)
	deciderSvc := submission.NewDecider(subRepo, ca)
	pendingSvc := submission.NewPendingLister(subRepo, ca)
	sec.Get("/pendingbotposts", api.PendingPostsHandler(pendingSvc))
	sec.Post("/botposts", api.SubmitPostHandler(submitterSvc, deciderSvc))
	sec.Post("/botposts/{id}/decision", api.DecidePostHandler(deciderSvc))

	deleterSvc := deletion.NewMediaDeleter(refRepo, subRepo, strg, cfg.MediaBucket)
	sec.Post("/delete-media", api.DeleteMediaHandler(deleterSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	// liveness stays outside the auth group so probes never need a token
	r.Get("/health", api.HealthHandler())

	return r
}

func protectedRoutes(r *chi.Mux, jwtKey string) chi.Router {
	return r.Group(func(pr chi.Router) {
		pr.Use(cMiddleware.WithAuth(jwtKey))
	})
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
		cfg.PublicBaseURL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBucket(ctx context.Context, strg port.Storage, bucket string) {
	if err := strg.InitBucket(bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", bucket, err)
		os.Exit(1)
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
