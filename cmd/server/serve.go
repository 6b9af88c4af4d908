package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func serve(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	userRepo := repository.NewUserRepository(db, cfg.StoreTimeout)
	projectRepo := repository.NewProjectRepository(db, cfg.StoreTimeout)
	taskRepo := repository.NewTaskRepository(db, cfg.StoreTimeout)

	// Refresh token revocation survives restarts only with redis
	var denylist auth.Denylist
	if cfg.RedisAddr != "" {
		client, err := auth.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer client.Close()
		denylist = auth.NewRedisDenylist(client, cfg.RedisKeyPrefix)
		log.Printf("Using redis denylist at %s", cfg.RedisAddr)
	} else {
		log.Println("REDIS_ADDR not set, revoked refresh tokens are not tracked")
	}

	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}, denylist)

	var generator services.TaskDraftGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Println("OPENAI_API_KEY not set, task generation is disabled")
	}

	authService := services.NewAuthService(userRepo, auth.BcryptHasher{Cost: cfg.BcryptCost}, tokens)
	userService := services.NewUserService(userRepo)

	h := handlers.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Project: handlers.NewProjectHandler(services.NewProjectService(projectRepo, taskRepo, userRepo)),
		Member:  handlers.NewMemberHandler(services.NewMemberService(projectRepo, userRepo)),
		Task:    handlers.NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, generator)),
		User:    handlers.NewUserHandler(userService),
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	handlers.RegisterRoutes(r, h, middleware.RequireAuth(tokens, userService))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}
