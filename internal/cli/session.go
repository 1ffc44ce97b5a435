package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anshita195/share-reading-watch-lists/internal/config"
)

// Execute implements the go-flags Commander interface for LoginCommand.
// A successful login stores the credentials so the daemon can attribute
// tracked items.
func (c *LoginCommand) Execute(args []string) error {
	if c.Username == "" {
		return fmt.Errorf("--username is required for login command")
	}
	if c.Password == "" {
		return fmt.Errorf("--password is required for login command")
	}

	cfg, cfgPath, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}

	if err := client.Login(context.Background(), c.Username, c.Password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.Backend.Username = c.Username
	cfg.Backend.Password = c.Password
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{"logged_in": true, "username": c.Username}
		return json.NewEncoder(os.Stdout).Encode(out)
	}
	fmt.Printf("Logged in as %s\n", c.Username)
	return nil
}

// Execute implements the go-flags Commander interface for LogoutCommand.
func (c *LogoutCommand) Execute(args []string) error {
	cfg, cfgPath, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	// Best effort: the stored credentials are forgotten even when the
	// backend is unreachable.
	if cfg.Backend.Username != "" {
		if client, cerr := newBackendClient(cfg); cerr == nil {
			ctx := context.Background()
			if lerr := client.Login(ctx, cfg.Backend.Username, cfg.Backend.Password); lerr == nil {
				_ = client.Logout(ctx)
			}
		}
	}

	cfg.Backend.Username = ""
	cfg.Backend.Password = ""
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{"logged_in": false}
		return json.NewEncoder(os.Stdout).Encode(out)
	}
	fmt.Println("Logged out")
	return nil
}

// Execute implements the go-flags Commander interface for RegisterCommand.
func (c *RegisterCommand) Execute(args []string) error {
	if c.Username == "" {
		return fmt.Errorf("--username is required for register command")
	}
	if c.Password == "" {
		return fmt.Errorf("--password is required for register command")
	}

	cfg, _, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}

	if err := client.Register(context.Background(), c.Username, c.Password); err != nil {
		return fmt.Errorf("register failed: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{"registered": true, "username": c.Username}
		return json.NewEncoder(os.Stdout).Encode(out)
	}
	fmt.Printf("Registered %s. Run: readwatch login\n", c.Username)
	return nil
}
