package cli

import (
	"context"

	"github.com/greenteam/opsboard/internal/client/data"
)

// Инструкции и обучающие материалы ведутся офисом, клиент их только читает

func (c *Cli) runPlaybooks(ctx context.Context) error {
	return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
		c.io.Println("=== Playbooks ===")
		c.io.Println()

		for _, p := range svc.Playbooks() {
			c.io.Printf("[%s] %s (id %s)\n", p.Category, p.Title, p.ID)
			c.io.Printf("   %s\n", p.Body)
			c.io.Println()
		}
		return nil
	})
}

func (c *Cli) runTraining(ctx context.Context) error {
	return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
		c.io.Println("=== Training Modules ===")
		c.io.Println()

		for _, m := range svc.TrainingModules() {
			req := ""
			if m.Required {
				req = " [required]"
			}
			c.io.Printf("%s%s (id %s)\n", m.Title, req, m.ID)
			c.io.Printf("   %s\n", m.Body)
		}
		return nil
	})
}
