package cli

import (
	"context"
	"fmt"
	"log/slog"

	clientapi "github.com/greenteam/opsboard/internal/client/api"
	"github.com/greenteam/opsboard/internal/client/auth"
	"github.com/greenteam/opsboard/internal/client/bootstrap"
	"github.com/greenteam/opsboard/internal/client/data"
	"github.com/greenteam/opsboard/internal/client/iocli"
	"github.com/greenteam/opsboard/internal/client/storage/boltdb"
	"github.com/greenteam/opsboard/internal/client/store"
)

type Cli struct {
	io          iocli.IO
	logger      *slog.Logger
	apiClient   *clientapi.Client
	authService *auth.Service
	boltStorage *boltdb.Storage
}

func New(
	apiClient *clientapi.Client,
	authService *auth.Service,
	boltStorage *boltdb.Storage,
	io iocli.IO,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		io:          io,
		logger:      logger,
		apiClient:   apiClient,
		authService: authService,
		boltStorage: boltStorage,
	}
}

// withBoard открывает сессию доски: продлевает авторизацию, загружает
// bootstrap с сервера, строит store с подписчиком персистентности и
// выполняет fn. По выходе Close сбрасывает отложенные ключи и дожидается
// запущенных записей на сервер.
func (c *Cli) withBoard(ctx context.Context, fn func(ctx context.Context, svc *data.Service) error) error {
	if _, err := c.authService.Session(ctx); err != nil {
		return err
	}

	bootstrapMap, err := bootstrap.Load(ctx, c.apiClient, c.logger)
	if err != nil {
		return fmt.Errorf("failed to load board data: %w", err)
	}

	s := store.New(bootstrapMap)
	flusher := store.NewFlusher(s, c.boltStorage, c.apiClient, store.DefaultFlushDelay, c.logger)
	defer flusher.Close(ctx)

	return fn(ctx, data.NewService(s))
}

func PrintUsage() {
	fmt.Println("Greenteam Ops Board Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  opsboard [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH      Path to local database (default: opsboard-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                          Register new user")
	fmt.Println("  login                             Login to server")
	fmt.Println("  logout                            Logout from server")
	fmt.Println("  status                            Show authentication status")
	fmt.Println("  pull                              Fetch the whole board and refresh the local snapshot")
	fmt.Println()
	fmt.Println("  announce [list|add]               Team announcements")
	fmt.Println("  checklist [list|add|done|undo]    Daily opening checklist")
	fmt.Println("  equipment [list|add|status]       Equipment fleet")
	fmt.Println("  repair [list|report|resolve]      Repair requests")
	fmt.Println("  mileage [list|log|export]         Vehicle mileage log")
	fmt.Println("  suggest [list|add]                Suggestion box")
	fmt.Println("  timeoff [list|request|approve|deny]  Time off requests")
	fmt.Println("  buyback [board|add|move]          Equipment buyback board")
	fmt.Println("  playbooks                         Job playbooks")
	fmt.Println("  training                          Training modules")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  opsboard login")
	fmt.Println("  opsboard announce add")
	fmt.Println("  opsboard checklist done 4f1c9a0e-5b7d-4c2e-9a1f-0d3e8b6c2a71")
	fmt.Println("  opsboard buyback move <task-id> triage")
	fmt.Println("  opsboard --server https://ops.greenteam.example pull")
}
