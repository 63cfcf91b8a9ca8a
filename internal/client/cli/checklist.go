package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runChecklist(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")

	switch sub {
	case "list":
		return c.withBoard(ctx, c.listChecklist)
	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("missing item text. Usage: opsboard checklist add <text>")
		}
		label := strings.Join(rest, " ")
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			item := svc.AddChecklistItem(label)
			c.io.Printf("✓ Added checklist item (id %s)\n", item.ID)
			return nil
		})
	case "done", "undo":
		if len(rest) == 0 {
			return fmt.Errorf("missing item id. Usage: opsboard checklist %s <id>", sub)
		}
		id := rest[0]
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			username := ""
			if authData, err := c.boltStorage.GetAuth(ctx); err == nil {
				username = authData.Username
			}
			if err := svc.SetChecklistDone(id, username, sub == "done"); err != nil {
				return err
			}
			c.io.Printf("✓ Checklist item %s updated\n", id)
			return nil
		})
	default:
		return fmt.Errorf("unknown subcommand: checklist %s (use: list, add, done, undo)", sub)
	}
}

func (c *Cli) listChecklist(ctx context.Context, svc *data.Service) error {
	items := svc.ChecklistItems()

	c.io.Println("=== Daily Checklist ===")
	c.io.Println()

	for _, item := range items {
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		c.io.Printf("%s %s (id %s)\n", mark, item.Label, item.ID)
		if item.Done && item.CompletedBy != "" {
			c.io.Printf("      done by %s at %s\n", item.CompletedBy, item.CompletedAt)
		}
	}

	return nil
}
