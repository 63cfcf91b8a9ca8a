package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runSuggest(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")

	switch sub {
	case "list":
		return c.withBoard(ctx, c.listSuggestions)
	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("missing suggestion text. Usage: opsboard suggest add <text>")
		}
		text := strings.Join(rest, " ")
		return c.withBoard(ctx, func(ctx context.Context, svc *data.Service) error {
			submittedBy := ""
			if authData, err := c.boltStorage.GetAuth(ctx); err == nil {
				submittedBy = authData.Username
			}
			sg := svc.AddSuggestion(text, submittedBy)
			c.io.Printf("✓ Suggestion submitted (id %s)\n", sg.ID)
			return nil
		})
	default:
		return fmt.Errorf("unknown subcommand: suggest %s (use: list, add)", sub)
	}
}

func (c *Cli) listSuggestions(ctx context.Context, svc *data.Service) error {
	suggestions := svc.Suggestions()

	c.io.Println("=== Suggestion Box ===")
	c.io.Println()

	if len(suggestions) == 0 {
		c.io.Println("No suggestions yet.")
		return nil
	}

	for _, sg := range suggestions {
		c.io.Printf("- %s\n", sg.Text)
		c.io.Printf("   by %s at %s (id %s)\n", sg.SubmittedBy, sg.SubmittedAt, sg.ID)
	}

	return nil
}
