package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	isAuth, err := c.authService.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if !isAuth {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'opsboard login' to authenticate.")
		return nil
	}

	authData, err := c.boltStorage.GetAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	expiresAt := time.Unix(authData.ExpiresAt, 0)
	remaining := time.Until(expiresAt)

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", authData.Username)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

	if remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("Token has expired. It will be refreshed on the next command.")
	}

	// Показываем, что лежит в локальном снапшоте
	snapshot := c.boltStorage.ReadAll(ctx)
	c.io.Println()
	if len(snapshot) == 0 {
		c.io.Println("Local snapshot: empty (run 'opsboard pull')")
	} else {
		c.io.Printf("Local snapshot: %d key(s) cached\n", len(snapshot))
	}

	return nil
}
