package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/auth"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/config"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/database"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/handlers"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/logger"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/repositories"
	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/routes"
)

func main() {
	logger.InitLogger()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	if err := sessionRepo.PurgeExpired(); err != nil {
		logrus.Warnf("Failed to purge expired sessions: %v", err)
	}

	sessions := auth.NewManager(cfg.SessionSecret, sessionRepo, cfg.SessionTTL)

	renderer, err := handlers.NewRenderer(cfg.TemplateDir)
	if err != nil {
		logrus.Fatalf("Failed to load templates: %v", err)
	}

	userHandler := handlers.NewUserHandler(userRepo, postRepo, likeRepo, followRepo, sessions, renderer)
	postHandler := handlers.NewPostHandler(userRepo, postRepo, likeRepo, sessions, renderer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: routes.SetupRoutes(userHandler, postHandler),
	}

	go func() {
		logrus.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}
	logrus.Info("Server exited")
}
