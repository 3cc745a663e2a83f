package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dojo-service/internal/cli"
	"github.com/spec-kit/dojo-service/internal/config"
	"github.com/spec-kit/dojo-service/internal/events"
	"github.com/spec-kit/dojo-service/internal/observability"
	"github.com/spec-kit/dojo-service/internal/registry"
	"github.com/spec-kit/dojo-service/internal/service"
	apperrors "github.com/spec-kit/dojo-service/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	seed := cfg.Random.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	dispatcher := events.NewInMemoryDispatcher()
	subscribeEventLogging(dispatcher, logger)

	allocationService := service.NewAllocationService(service.AllocationDependencies{
		RoomRegistry:   registry.NewRoomRegistry(),
		PersonRegistry: registry.NewPersonRegistry(),
		Dispatcher:     dispatcher,
		Rand:           rand.New(rand.NewSource(seed)),
		Logger:         logger,
	})

	rootCmd := cli.NewRootCommand(cli.Dependencies{
		Service:      allocationService,
		Logger:       logger,
		Out:          os.Stdout,
		SnapshotPath: cfg.Snapshot.Path,
		Version:      cfg.App.Version,
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		domainErr := apperrors.ToDomainError(err)
		fmt.Fprintf(os.Stderr, "Error [%s]: %s\n", domainErr.Code, domainErr.Message)
		os.Exit(1)
	}
}

func subscribeEventLogging(dispatcher events.Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event events.Event) error {
		logger.Debug("event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Any("payload", event.Payload))
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventRoomCreated,
		events.EventPersonAdded,
		events.EventPersonAllocated,
		events.EventPersonReallocated,
		events.EventStateRestored,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
