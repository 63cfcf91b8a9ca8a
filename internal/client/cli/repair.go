package cli

import (
	"context"
	"fmt"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runRepair(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")

	switch sub {
	case "list":
		return c.withBoard(ctx, c.listRepairs)
	case "report":
		return c.withBoard(ctx, c.reportRepair)
	case "resolve":
		if len(rest) == 0 {
			return fmt.Errorf("missing request id. Usage: opsboard repair resolve <id>")
		}
		id := rest[0]
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			if err := svc.ResolveRepair(id); err != nil {
				return err
			}
			c.io.Printf("✓ Repair request %s resolved\n", id)
			return nil
		})
	default:
		return fmt.Errorf("unknown subcommand: repair %s (use: list, report, resolve)", sub)
	}
}

func (c *Cli) listRepairs(ctx context.Context, svc *data.Service) error {
	requests := svc.RepairRequests()

	c.io.Println("=== Repair Requests ===")
	c.io.Println()

	if len(requests) == 0 {
		c.io.Println("No repair requests.")
		return nil
	}

	for _, r := range requests {
		state := "open"
		if r.Resolved {
			state = "resolved"
		}
		c.io.Printf("[%s] %s (id %s)\n", state, r.Description, r.ID)
		c.io.Printf("   equipment %s, reported by %s at %s\n", r.EquipmentID, r.ReportedBy, r.ReportedAt)
	}

	return nil
}

func (c *Cli) reportRepair(ctx context.Context, svc *data.Service) error {
	equipmentID, err := c.io.ReadInput("Equipment ID: ")
	if err != nil {
		return fmt.Errorf("failed to read equipment id: %w", err)
	}

	description, err := c.io.ReadInput("What's broken: ")
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}
	if description == "" {
		return fmt.Errorf("description cannot be empty")
	}

	reportedBy, err := c.io.ReadInput("Your name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	r := svc.ReportRepair(equipmentID, description, reportedBy)

	c.io.Println()
	c.io.Printf("✓ Repair request filed (id %s)\n", r.ID)
	return nil
}
