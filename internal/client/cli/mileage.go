package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runMileage(ctx context.Context, args []string) error {
	sub, _ := subcommand(args, "list")

	switch sub {
	case "list":
		return c.withBoard(ctx, c.listMileage)
	case "log":
		return c.withBoard(ctx, c.logMileage)
	case "export":
		return c.withBoard(ctx, c.exportMileage)
	default:
		return fmt.Errorf("unknown subcommand: mileage %s (use: list, log, export)", sub)
	}
}

func (c *Cli) listMileage(ctx context.Context, svc *data.Service) error {
	entries := svc.MileageLog()

	c.io.Println("=== Mileage Log ===")
	c.io.Println()

	if len(entries) == 0 {
		c.io.Println("No mileage entries.")
		return nil
	}

	for _, m := range entries {
		flag := ""
		if m.Exported {
			flag = " (exported)"
		}
		c.io.Printf("%s  %-16s %-12s %7.1f mi%s\n", m.Date, m.Driver, m.Vehicle, m.Miles, flag)
		c.io.Printf("   %s (id %s)\n", m.Purpose, m.ID)
	}

	return nil
}

func (c *Cli) logMileage(ctx context.Context, svc *data.Service) error {
	date, err := c.io.ReadInput("Date (YYYY-MM-DD, empty for today): ")
	if err != nil {
		return fmt.Errorf("failed to read date: %w", err)
	}

	driver, err := c.io.ReadInput("Driver: ")
	if err != nil {
		return fmt.Errorf("failed to read driver: %w", err)
	}

	vehicle, err := c.io.ReadInput("Vehicle: ")
	if err != nil {
		return fmt.Errorf("failed to read vehicle: %w", err)
	}

	milesStr, err := c.io.ReadInput("Miles: ")
	if err != nil {
		return fmt.Errorf("failed to read miles: %w", err)
	}
	miles, err := strconv.ParseFloat(milesStr, 64)
	if err != nil || miles <= 0 {
		return fmt.Errorf("invalid miles value: %q", milesStr)
	}

	purpose, err := c.io.ReadInput("Purpose: ")
	if err != nil {
		return fmt.Errorf("failed to read purpose: %w", err)
	}

	m := svc.LogMileage(date, driver, vehicle, miles, purpose)

	c.io.Println()
	c.io.Printf("✓ Mileage logged (id %s)\n", m.ID)
	return nil
}

// exportMileage выводит невыгруженные записи в CSV для бухгалтерии
// и помечает их выгруженными
func (c *Cli) exportMileage(ctx context.Context, svc *data.Service) error {
	entries := svc.MileageLog()

	var ids []string
	c.io.Println("date,driver,vehicle,miles,purpose")
	for _, m := range entries {
		if m.Exported {
			continue
		}
		c.io.Printf("%s,%s,%s,%.1f,%s\n", m.Date, m.Driver, m.Vehicle, m.Miles, m.Purpose)
		ids = append(ids, m.ID)
	}

	if len(ids) == 0 {
		c.io.Println()
		c.io.Println("Nothing to export.")
		return nil
	}

	svc.MarkMileageExported(ids)

	c.io.Println()
	c.io.Printf("✓ Exported %d entr(ies)\n", len(ids))
	return nil
}
