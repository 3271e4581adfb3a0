package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"echo-server/internal/config"
	"echo-server/internal/handler"
	"echo-server/internal/middleware"
	"echo-server/internal/repository"
	"echo-server/internal/service"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repository.Open(ctx, cfg.Database.DSN())
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer db.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = repository.Migrate(ctx, db)
	cancel()
	if err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshTokenExpiration)
	userService := service.NewUserService(userRepo, followRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo, likeRepo, commentRepo, notificationRepo)
	commentService := service.NewCommentService(commentRepo, tweetRepo, userRepo, notificationRepo)
	followService := service.NewFollowService(followRepo, userRepo, notificationRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	reportService := service.NewReportService(reportRepo, userRepo, tweetRepo, commentRepo)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService, cfg.Upload.Dir, cfg.Upload.MaxSizeMB)
	tweetHandler := handler.NewTweetHandler(tweetService)
	commentHandler := handler.NewCommentHandler(commentService)
	followHandler := handler.NewFollowHandler(followService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	reportHandler := handler.NewReportHandler(reportService)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")
	protected.HandleFunc("/auth/check-admin", authHandler.CheckAdmin).Methods("GET", "OPTIONS")

	protected.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/users/me/avatar", userHandler.UploadAvatar).Methods("POST", "OPTIONS")
	protected.HandleFunc("/users/{id:[0-9]+}", userHandler.GetUser).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/{id:[0-9]+}/tweets", tweetHandler.ListByUser).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/{id:[0-9]+}/follow", followHandler.Follow).Methods("POST", "OPTIONS")
	protected.HandleFunc("/users/{id:[0-9]+}/follow", followHandler.Unfollow).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/users/{id:[0-9]+}/followers", followHandler.Followers).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/{id:[0-9]+}/following", followHandler.Following).Methods("GET", "OPTIONS")

	protected.HandleFunc("/tweets", tweetHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tweets", tweetHandler.Feed).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tweets/{id:[0-9]+}", tweetHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tweets/{id:[0-9]+}", tweetHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/tweets/{id:[0-9]+}/like", tweetHandler.Like).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tweets/{id:[0-9]+}/like", tweetHandler.Unlike).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/tweets/{id:[0-9]+}/comments", commentHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tweets/{id:[0-9]+}/comments", commentHandler.ListByTweet).Methods("GET", "OPTIONS")
	protected.HandleFunc("/comments/{id:[0-9]+}", commentHandler.Delete).Methods("DELETE", "OPTIONS")

	protected.HandleFunc("/notifications", notificationHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notifications/unread-count", notificationHandler.UnreadCount).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkRead).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods("POST", "OPTIONS")

	protected.HandleFunc("/reports", reportHandler.Create).Methods("POST", "OPTIONS")

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminMiddleware(authService))

	admin.HandleFunc("/reports", reportHandler.List).Methods("GET", "OPTIONS")
	admin.HandleFunc("/reports/{id:[0-9]+}", reportHandler.UpdateStatus).Methods("PUT", "OPTIONS")

	r.PathPrefix("/uploads/avatars/").Handler(
		http.StripPrefix("/uploads/avatars/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting Echo API server on %s (env: %s)", addr, cfg.Server.Env)
		log.Printf("Connected to MySQL at %s:%s", cfg.Database.Host, cfg.Database.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"echo-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Welcome to Echo API","version":"1.0.0"}`))
}
