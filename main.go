package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"

	"github.com/petalmind/petalmind-gateway/pkg/api/handler"
	"github.com/petalmind/petalmind-gateway/pkg/api/middleware"
	"github.com/petalmind/petalmind-gateway/pkg/auth"
	"github.com/petalmind/petalmind-gateway/pkg/database"
	"github.com/petalmind/petalmind-gateway/pkg/logger"
	"github.com/petalmind/petalmind-gateway/pkg/providers"
	"github.com/petalmind/petalmind-gateway/pkg/repository"
	"github.com/petalmind/petalmind-gateway/pkg/search"
	"github.com/petalmind/petalmind-gateway/pkg/service"
	"github.com/petalmind/petalmind-gateway/pkg/services"
	"github.com/petalmind/petalmind-gateway/pkg/tavily"
)

type Config struct {
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	GroqKey       string `env:"GROQ_API_KEY"`
	TavilyKey     string `env:"TAVILY_API_KEY"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	SessionSecret string `env:"SESSION_SECRET,required"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	serviceGroup, err := setupServices()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return serviceGroup.Run(ctx)
}

func setupServices() (service.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	authenticator := auth.NewAuthenticator([]byte(cfg.SessionSecret))

	openAIProvider := providers.NewOpenAI(cfg.OpenAIKey)
	groqProvider := providers.NewGroq(cfg.GroqKey)

	augmenter := search.NewAugmenter(tavily.NewClient(cfg.TavilyKey))

	completionService := services.NewCompletionService(
		groqProvider,
		augmenter,
		openAIProvider,
		groqProvider,
	)

	chatRepository := repository.NewChatRepository(db)
	messageRepository := repository.NewMessageRepository(db)
	imageRepository := repository.NewImageRepository(db)

	chatHandler := handler.NewChat(completionService)
	chatsHandler := handler.NewChats(chatRepository)
	messagesHandler := handler.NewMessages(chatRepository, messageRepository)
	imagesHandler := handler.NewImages(imageRepository)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", chatHandler.Complete)
	mux.HandleFunc("GET /api/chats", chatsHandler.List)
	mux.HandleFunc("POST /api/chats", chatsHandler.Create)
	mux.HandleFunc("PUT /api/chats/{chatId}", chatsHandler.Rename)
	mux.HandleFunc("DELETE /api/chats/{chatId}", chatsHandler.Delete)
	mux.HandleFunc("GET /api/chats/{chatId}/messages", messagesHandler.List)
	mux.HandleFunc("POST /api/chats/{chatId}/messages", messagesHandler.Append)
	mux.HandleFunc("GET /api/images", imagesHandler.List)
	mux.HandleFunc("POST /api/images", imagesHandler.Create)
	mux.HandleFunc("GET /api/images/{imageId}", imagesHandler.Get)

	root := middleware.RequestID(middleware.Auth(authenticator)(mux))

	return service.Group{
		service.NewHTTPServer(cfg.HTTPAddr, root),
	}, nil
}
