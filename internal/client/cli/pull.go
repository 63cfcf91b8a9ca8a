package cli

import (
	"context"
	"fmt"

	"github.com/greenteam/opsboard/internal/client/bootstrap"
	"github.com/greenteam/opsboard/internal/client/data"
	"github.com/greenteam/opsboard/internal/client/store"
)

// runPull забирает всю доску с сервера и обновляет локальный снапшот,
// чтобы последующий холодный старт видел свежие данные.
func (c *Cli) runPull(ctx context.Context) error {
	if _, err := c.authService.Session(ctx); err != nil {
		return err
	}

	c.io.Println("Fetching board from server...")

	bootstrapMap, err := bootstrap.Load(ctx, c.apiClient, c.logger)
	if err != nil {
		return fmt.Errorf("failed to load board data: %w", err)
	}

	c.boltStorage.MergeWrite(ctx, bootstrapMap)

	svc := data.NewService(store.New(bootstrapMap))
	board := svc.BuybackBoard()
	tasks := 0
	for _, col := range board.Columns {
		tasks += len(col)
	}

	c.io.Println()
	c.io.Printf("✓ Pulled %d document(s)\n", len(bootstrapMap))
	c.io.Println()
	c.io.Printf("  Announcements:     %d\n", len(svc.Announcements()))
	c.io.Printf("  Checklist items:   %d\n", len(svc.ChecklistItems()))
	c.io.Printf("  Equipment:         %d\n", len(svc.EquipmentList()))
	c.io.Printf("  Repair requests:   %d\n", len(svc.RepairRequests()))
	c.io.Printf("  Mileage entries:   %d\n", len(svc.MileageLog()))
	c.io.Printf("  Playbooks:         %d\n", len(svc.Playbooks()))
	c.io.Printf("  Suggestions:       %d\n", len(svc.Suggestions()))
	c.io.Printf("  Time off requests: %d\n", len(svc.TimeOffRequests()))
	c.io.Printf("  Buyback tasks:     %d\n", tasks)
	c.io.Printf("  Training modules:  %d\n", len(svc.TrainingModules()))

	return nil
}
