package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for delete command")
	}

	cfg, _, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := sessionClient(ctx, cfg)
	if err != nil {
		return err
	}

	if err := client.DeleteItem(ctx, c.ID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"deleted": c.ID})
	}
	fmt.Printf("Deleted item %s\n", c.ID)
	return nil
}
