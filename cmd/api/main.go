package main

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"foundly/internal/adapter/api"
	"foundly/internal/adapter/api/handler"
	apimiddleware "foundly/internal/adapter/api/middleware"
	"foundly/internal/adapter/api/router"
	"foundly/internal/adapter/repository"
	"foundly/internal/infrastructure/firebase"
	"foundly/internal/infrastructure/ratelimit"
	"foundly/internal/infrastructure/websocket"
	"foundly/internal/session"
	"foundly/internal/usecase"
	"foundly/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Validator = api.NewValidator()

	// Without backend credentials the server still comes up, but only the
	// health endpoint answers, reporting what is missing.
	if err := cfg.Validate(); err != nil {
		log.Printf("Starting in degraded mode: %v", err)
		handler.SetupHealthHandler(nil, err.Error())
		router.SetupHealthRouter(e)
		e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
		return
	}

	ctx := context.Background()

	var opt option.ClientOption
	if cfg.ServiceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	} else {
		opt = option.WithCredentialsFile(cfg.ServiceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	itemRepo := repository.NewFirestoreItemRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	itemUseCase := usecase.NewItemUseCase(itemRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, itemRepo, userRepo)

	handler.Setup(authUseCase, userUseCase, itemUseCase, chatUseCase)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	wsLimiter := ratelimit.NewRateLimiter()
	wsLimiter.StartCleanupRoutine()

	sessionDeps := session.Deps{
		Users:           userRepo,
		Items:           itemRepo,
		Chats:           chatRepo,
		Auth:            firebaseAuthClient,
		ProfilePageSize: cfg.ProfilePageSize,
	}
	wsHandler := handler.NewWebSocketHandler(wsManager, sessionDeps, wsLimiter)

	handler.SetupHealthHandler(wsManager, "")

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	if cfg.Environment == "development" {
		handler.SetupDevTokenHandler(firebaseAuthClient, cfg)
		router.SetupDevRouter(e)
	}

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
