package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anshita195/share-reading-watch-lists/internal/backend"
	"github.com/anshita195/share-reading-watch-lists/internal/config"
)

// sessionClient builds a backend client and logs in with stored credentials.
func sessionClient(ctx context.Context, cfg *config.Config) (*backend.Client, error) {
	if cfg.Backend.Username == "" {
		return nil, fmt.Errorf("not logged in (run: readwatch login)")
	}
	client, err := newBackendClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Login(ctx, cfg.Backend.Username, cfg.Backend.Password); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return client, nil
}

// Execute implements the go-flags Commander interface for FollowCommand.
func (c *FollowCommand) Execute(args []string) error {
	if c.User == "" {
		return fmt.Errorf("--user is required for follow command")
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

	if err := client.Follow(ctx, c.User); err != nil {
		return fmt.Errorf("follow failed: %w", err)
	}

	if c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"following": c.User})
	}
	fmt.Printf("Now following %s\n", c.User)
	return nil
}

// Execute implements the go-flags Commander interface for UnfollowCommand.
func (c *UnfollowCommand) Execute(args []string) error {
	if c.User == "" {
		return fmt.Errorf("--user is required for unfollow command")
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

	if err := client.Unfollow(ctx, c.User); err != nil {
		return fmt.Errorf("unfollow failed: %w", err)
	}

	if c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{"unfollowed": c.User})
	}
	fmt.Printf("Unfollowed %s\n", c.User)
	return nil
}

// Execute implements the go-flags Commander interface for FollowingCommand.
func (c *FollowingCommand) Execute(args []string) error {
	cfg, _, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := sessionClient(ctx, cfg)
	if err != nil {
		return err
	}

	user := c.User
	if user == "" {
		user = cfg.Backend.Username
	}

	following, err := client.Following(ctx, user)
	if err != nil {
		return fmt.Errorf("fetching following: %w", err)
	}
	followers, err := client.Followers(ctx, user)
	if err != nil {
		return fmt.Errorf("fetching followers: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{
			"username":  user,
			"following": following,
			"followers": followers,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%s follows %d users:\n", user, len(following))
	for _, u := range following {
		fmt.Printf("  %s\n", u)
	}
	fmt.Printf("\n%s has %d followers:\n", user, len(followers))
	for _, u := range followers {
		fmt.Printf("  %s\n", u)
	}
	return nil
}
