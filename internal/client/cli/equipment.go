package cli

import (
	"context"
	"fmt"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runEquipment(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")

	switch sub {
	case "list":
		return c.withBoard(ctx, c.listEquipment)
	case "add":
		return c.withBoard(ctx, c.addEquipment)
	case "status":
		if len(rest) < 2 {
			return fmt.Errorf("usage: opsboard equipment status <id> <operational|in-repair|retired>")
		}
		id, status := rest[0], rest[1]
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			if err := svc.SetEquipmentStatus(id, status); err != nil {
				return err
			}
			c.io.Printf("✓ Equipment %s marked %s\n", id, status)
			return nil
		})
	default:
		return fmt.Errorf("unknown subcommand: equipment %s (use: list, add, status)", sub)
	}
}

func (c *Cli) listEquipment(ctx context.Context, svc *data.Service) error {
	equipment := svc.EquipmentList()

	c.io.Println("=== Equipment ===")
	c.io.Println()

	if len(equipment) == 0 {
		c.io.Println("No equipment registered.")
		return nil
	}

	for _, e := range equipment {
		c.io.Printf("%-24s %-12s (id %s)\n", e.Name, e.Status, e.ID)
		if e.Model != "" || e.Serial != "" {
			c.io.Printf("   model %s, serial %s\n", e.Model, e.Serial)
		}
	}

	return nil
}

func (c *Cli) addEquipment(ctx context.Context, svc *data.Service) error {
	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	model, err := c.io.ReadInput("Model: ")
	if err != nil {
		return fmt.Errorf("failed to read model: %w", err)
	}

	serial, err := c.io.ReadInput("Serial: ")
	if err != nil {
		return fmt.Errorf("failed to read serial: %w", err)
	}

	e := svc.AddEquipment(name, model, serial)

	c.io.Println()
	c.io.Printf("✓ Equipment registered (id %s)\n", e.ID)
	return nil
}
