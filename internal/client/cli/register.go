package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password (min 8 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	c.io.Println()
	c.io.Println("Registering user...")

	userID, err := c.authService.Register(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", userID)
	c.io.Printf("Username: %s\n", username)
	c.io.Println()
	c.io.Println("Please run 'opsboard login' to start using the board.")

	return nil
}
