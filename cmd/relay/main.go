package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/internal"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
	"chat-relay/socket"
	"chat-relay/upstream"
)

// Exit codes for the relay process.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer executes before the process
// exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if config.DebugPort > 0 {
		internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.DefaultMapper)
	}

	// 3. Runtime state
	serverCache := runtime.NewServerRoomCache(log)
	registry := runtime.NewRegistry(log, serverCache)
	lifecycle := runtime.NewLifecycle(log)

	// 4. Repositories
	roomRepository := repositories.NewRoomRepository(db, log)
	userRepository := repositories.NewUserRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)

	// 5. Upstream collaborators
	cryptoClient := upstream.NewCryptoClient(config.CryptoBaseURL, config.UpstreamTimeout)
	uploadClient := upstream.NewUploadClient(config.DataBaseURL, config.UpstreamTimeout)

	var mailer contract.Mailer
	if config.MailBaseURL != "" {
		mailer = upstream.NewMailClient(config.MailBaseURL, config.UpstreamTimeout)
	}
	var site contract.ExpiryTracker
	if config.SiteBaseURL != "" {
		site = upstream.NewSiteClient(config.SiteBaseURL, config.UpstreamTimeout)
	}

	// 6. Services
	sessionService := services.NewSessionService(
		log, auth.NewVerifier(config.JWTSecret), userRepository,
		registry, serverCache, cryptoClient, config.ServerSecret,
	)
	roomService := services.NewRoomService(
		log, roomRepository, userRepository, registry, serverCache,
		lifecycle, uploadClient, site, mailer,
	)
	messageService := services.NewMessageService(
		log, messageRepository, roomRepository, userRepository,
		registry, serverCache, uploadClient,
	)
	userService := services.NewUserService(log, userRepository, uploadClient)

	lifecycle.Bind(roomService.Delete, roomRepository.Exists)
	if rooms, err := roomRepository.List(); err != nil {
		log.Warn("lifecycle seed failed, persisted deadlines not restored", "error", err)
	} else {
		lifecycle.Seed(rooms)
	}

	// 7. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 8. Background workers
	sup := workers.NewSupervisor(log)
	go sup.Add(workers.NewStatusWorker(log, registry, config.StatusInterval)).Run(ctx)

	// 9. Transport
	router := socket.NewRouter(log, sessionService, roomService, messageService, userService, cryptoClient)
	server := socket.NewServer(log, registry, router, socket.ServerConfig{
		BufferSize:      config.ConnectionBufferSize,
		DeliveryTimeout: config.DeliveryTimeout,
		WriteTimeout:    config.WriteTimeout,
		PongTimeout:     config.PongTimeout,
		MaxMessageSize:  config.MaxMessageSize,
	})

	if err := server.Listen(ctx, config.Host, config.Port); err != nil {
		sup.Stop()
		return exitRuntime, fmt.Errorf("server error: %w", err)
	}

	sup.Stop()
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
