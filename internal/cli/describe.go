package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/sticker-gallery/internal/api"
	"github.com/liminalpurple/sticker-gallery/internal/llm"
)

// NewDescribeCmd creates the describe command
func NewDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <fileId>",
		Short: "Generate an accessibility description for a sticker",
		Long: `Fetch the sticker media for a file id and generate a one-sentence
accessibility description with Claude vision. Requires an Anthropic API key
in the configuration or ANTHROPIC_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(args[0])
		},
	}
}

func runDescribe(fileID string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Config.Anthropic.APIKey == "" {
		return fmt.Errorf("no Anthropic API key configured - set ANTHROPIC_API_KEY or add to config.yaml")
	}

	ctx := context.Background()

	data, err := a.Client.FetchMedia(ctx, api.MediaPath(fileID))
	if err != nil {
		return fmt.Errorf("failed to fetch sticker media: %w", err)
	}

	llmClient := llm.NewClient(
		a.Config.Anthropic.APIKey,
		a.Config.Anthropic.Model,
		a.Config.Anthropic.MaxTokens,
	)

	description, err := llmClient.DescribeSticker(ctx, data)
	if err != nil {
		return err
	}

	fmt.Println(description)
	return nil
}
