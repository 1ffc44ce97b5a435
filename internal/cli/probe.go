package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/anshita195/share-reading-watch-lists/internal/page"
)

// Execute implements the go-flags Commander interface for ProbeCommand.
func (c *ProbeCommand) Execute(args []string) error {
	if c.URL == "" {
		return fmt.Errorf("--url is required for probe command")
	}

	info, err := page.NewProber(nil).Probe(context.Background(), c.URL)
	if err != nil {
		return fmt.Errorf("probing page: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{
			"url":        info.URL,
			"title":      info.Title,
			"is_video":   info.IsVideo,
			"is_article": info.IsArticle,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("URL:     %s\n", info.URL)
	fmt.Printf("Title:   %s\n", info.Title)
	fmt.Printf("Video:   %v\n", info.IsVideo)
	fmt.Printf("Article: %v\n", info.IsArticle)
	return nil
}
