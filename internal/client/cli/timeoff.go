package cli

import (
	"context"
	"fmt"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runTimeOff(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")

	switch sub {
	case "list":
		return c.withBoard(ctx, c.listTimeOff)
	case "request":
		return c.withBoard(ctx, c.requestTimeOff)
	case "approve", "deny":
		if len(rest) == 0 {
			return fmt.Errorf("missing request id. Usage: opsboard timeoff %s <id>", sub)
		}
		id := rest[0]
		status := "approved"
		if sub == "deny" {
			status = "denied"
		}
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			if err := svc.SetTimeOffStatus(id, status); err != nil {
				return err
			}
			c.io.Printf("✓ Time off request %s %s\n", id, status)
			return nil
		})
	default:
		return fmt.Errorf("unknown subcommand: timeoff %s (use: list, request, approve, deny)", sub)
	}
}

func (c *Cli) listTimeOff(ctx context.Context, svc *data.Service) error {
	requests := svc.TimeOffRequests()

	c.io.Println("=== Time Off Requests ===")
	c.io.Println()

	if len(requests) == 0 {
		c.io.Println("No time off requests.")
		return nil
	}

	for _, r := range requests {
		c.io.Printf("[%s] %s: %s to %s (id %s)\n", r.Status, r.Employee, r.StartDate, r.EndDate, r.ID)
		if r.Reason != "" {
			c.io.Printf("   %s\n", r.Reason)
		}
	}

	return nil
}

func (c *Cli) requestTimeOff(ctx context.Context, svc *data.Service) error {
	employee, err := c.io.ReadInput("Employee: ")
	if err != nil {
		return fmt.Errorf("failed to read employee: %w", err)
	}
	if employee == "" {
		return fmt.Errorf("employee cannot be empty")
	}

	startDate, err := c.io.ReadInput("Start date (YYYY-MM-DD): ")
	if err != nil {
		return fmt.Errorf("failed to read start date: %w", err)
	}

	endDate, err := c.io.ReadInput("End date (YYYY-MM-DD): ")
	if err != nil {
		return fmt.Errorf("failed to read end date: %w", err)
	}

	reason, err := c.io.ReadInput("Reason: ")
	if err != nil {
		return fmt.Errorf("failed to read reason: %w", err)
	}

	r := svc.RequestTimeOff(employee, startDate, endDate, reason)

	c.io.Println()
	c.io.Printf("✓ Time off requested (id %s)\n", r.ID)
	return nil
}
