package cli

import (
	"context"
	"fmt"

	"github.com/greenteam/opsboard/internal/client/data"
)

func (c *Cli) runAnnounce(ctx context.Context, args []string) error {
	sub, _ := subcommand(args, "list")

	switch sub {
	case "list":
		return c.withBoard(ctx, c.listAnnouncements)
	case "add":
		return c.withBoard(ctx, c.addAnnouncement)
	default:
		return fmt.Errorf("unknown subcommand: announce %s (use: list, add)", sub)
	}
}

func (c *Cli) listAnnouncements(ctx context.Context, svc *data.Service) error {
	announcements := svc.Announcements()

	c.io.Println("=== Announcements ===")
	c.io.Println()

	if len(announcements) == 0 {
		c.io.Println("No announcements.")
		return nil
	}

	for _, a := range announcements {
		pin := ""
		if a.Pinned {
			pin = " [pinned]"
		}
		c.io.Printf("%s%s\n", a.Title, pin)
		c.io.Printf("   %s\n", a.Body)
		c.io.Printf("   by %s at %s (id %s)\n", a.Author, a.PostedAt, a.ID)
		c.io.Println()
	}

	return nil
}

func (c *Cli) addAnnouncement(ctx context.Context, svc *data.Service) error {
	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	body, err := c.io.ReadInput("Body: ")
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	author, err := c.io.ReadInput("Author: ")
	if err != nil {
		return fmt.Errorf("failed to read author: %w", err)
	}

	a := svc.PostAnnouncement(title, body, author, false)

	c.io.Println()
	c.io.Printf("✓ Announcement posted (id %s)\n", a.ID)
	return nil
}
