package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/sticker-gallery/internal/app"
	"github.com/liminalpurple/sticker-gallery/internal/config"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your sticker sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sticker set id: %s", args[0])
			}
			return runDelete(id, skipConfirm)
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runDelete(id int64, skipConfirm bool) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()

	// The working set is the lookup source for the confirmation prompt, so
	// load it first.
	if _, _, err := a.LoadStickers(ctx); err != nil {
		return err
	}

	if skipConfirm {
		a.Actions.Confirm = func(string) bool { return true }
	} else {
		a.Actions.Confirm = promptConfirm
	}
	// The post-delete reload result is printed here rather than re-rendered.
	a.Actions.Reload = func(ctx context.Context) error {
		_, _, err := a.LoadStickers(ctx)
		if err == nil {
			fmt.Printf("%d sticker sets remaining\n", len(a.Sets.Records()))
		}
		return err
	}

	deleted, err := a.Actions.DeleteSet(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("Cancelled")
	}
	return nil
}

// NewOpenCmd creates the open command
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open a sticker set through the host deep link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Actions.Open(args[0])
		},
	}
}

// NewShareCmd creates the share command
func NewShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <name> <title>",
		Short: "Share a sticker set through the host share sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Actions.Share(args[0], args[1])
		},
	}
}

// NewDetailCmd creates the detail command
func NewDetailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail <id>",
		Short: "Show one sticker set with all its media resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sticker set id: %s", args[0])
			}
			return runDetail(id)
		},
	}
}

func runDetail(id int64) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()

	if _, _, err := a.LoadStickers(ctx); err != nil {
		return err
	}

	detail, ok := a.Actions.ViewDetail(ctx, id)
	if !ok {
		// Lookup miss: the detail view simply does not open.
		return nil
	}

	fmt.Printf("%s  (%d stickers)\n", detail.Card.Title, detail.Card.Count)
	for _, node := range detail.Nodes {
		switch {
		case node.Failed:
			fmt.Printf("  %s (unavailable)\n", node.Glyph)
		case node.Anim != nil:
			fmt.Printf("  %s animated, %d frames, %s\n", node.Glyph, node.Anim.Frames(), node.Anim.Duration().Round(time.Millisecond))
		case node.Raster != nil:
			fmt.Printf("  %s %dx%d %s\n", node.Glyph, node.Raster.Width, node.Raster.Height, node.Raster.MimeType)
		default:
			fmt.Printf("  %s\n", node.Glyph)
		}
	}
	return nil
}

// loadApp loads configuration and builds the application.
func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return app.New(cfg), nil
}

// promptConfirm asks a yes/no question on the terminal.
func promptConfirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
