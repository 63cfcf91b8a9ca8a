package cli

import (
	"context"
	"fmt"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runBuyback(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "board")

	switch sub {
	case "board", "list":
		return c.withBoard(ctx, c.printBuybackBoard)
	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("missing column. Usage: opsboard buyback add <column>")
		}
		column := rest[0]
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			return c.addBuybackTask(svc, column)
		})
	case "move":
		if len(rest) < 2 {
			return fmt.Errorf("usage: opsboard buyback move <task-id> <column>")
		}
		id, toColumn := rest[0], rest[1]
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			if err := svc.MoveBuybackTask(id, toColumn); err != nil {
				return err
			}
			c.io.Printf("✓ Task %s moved to %s\n", id, toColumn)
			return nil
		})
	default:
		return fmt.Errorf("unknown subcommand: buyback %s (use: board, add, move)", sub)
	}
}

func (c *Cli) printBuybackBoard(ctx context.Context, svc *data.Service) error {
	board := svc.BuybackBoard()

	c.io.Println("=== Buyback Board ===")
	c.io.Println()

	for _, col := range board.Order {
		tasks := board.Columns[col]
		c.io.Printf("%s (%d)\n", col, len(tasks))
		for _, t := range tasks {
			c.io.Printf("   %s (id %s)\n", t.Title, t.ID)
			if t.Details != "" {
				c.io.Printf("      %s\n", t.Details)
			}
		}
		c.io.Println()
	}

	return nil
}

func (c *Cli) addBuybackTask(svc *data.Service, column string) error {
	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	details, err := c.io.ReadInput("Details: ")
	if err != nil {
		return fmt.Errorf("failed to read details: %w", err)
	}

	task, err := svc.AddBuybackTask(column, title, details)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Task added to %s (id %s)\n", column, task.ID)
	return nil
}
