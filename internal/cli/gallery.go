// Package cli implements the stickergallery commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/liminalpurple/sticker-gallery/internal/app"
	"github.com/liminalpurple/sticker-gallery/internal/config"
	"github.com/liminalpurple/sticker-gallery/internal/gallery"
	"github.com/liminalpurple/sticker-gallery/internal/media"
)

// NewGalleryCmd creates the gallery command
func NewGalleryCmd() *cobra.Command {
	var (
		resolveAll bool
		filter     string
		asHTML     bool
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Load and display your sticker sets",
		Long: `Authenticate against the backend, fetch your sticker sets, and display
them as gallery cards with lazily resolved preview media.

With a credential in ` + "TELEGRAM_INIT_DATA" + ` the gallery shows your own sets;
without one it serves the public preview mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(resolveAll, filter, asHTML)
		},
	}

	cmd.Flags().BoolVar(&resolveAll, "all", false, "force immediate resolution of every preview")
	cmd.Flags().StringVar(&filter, "filter", "", "show only sets whose title contains this text")
	cmd.Flags().BoolVar(&asHTML, "html", false, "emit the gallery summary as HTML")
	return cmd
}

func runGallery(resolveAll bool, filter string, asHTML bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a := app.New(cfg)
	defer a.Close()

	ctx := context.Background()

	a.Bridge.Ready()
	a.Bridge.Expand()

	view, verdict, err := a.LoadStickers(ctx)
	if err != nil {
		if verdict.CanRetry {
			fmt.Fprintf(os.Stderr, "Loading failed: %s\nRun the command again to retry.\n", verdict.Message)
		}
		return err
	}

	if resolveAll {
		a.Loader.ResolveAll(ctx)
	}

	if identity, ok := a.Session.Identity(); ok {
		fmt.Printf("Hello, %s!\n", identity.DisplayName())
	}
	if verdict.Anonymous {
		fmt.Println("Public preview mode (no host credential)")
	} else if verdict.Role != "" {
		fmt.Printf("Authenticated (%s)\n", verdict.Role)
	}
	fmt.Println()

	if filter != "" {
		view = gallery.Render(gallery.Filter(a.Sets.Records(), filter))
	}

	if asHTML {
		fmt.Println(gallery.SummaryHTML(view))
		return nil
	}

	if view.Empty() {
		fmt.Println("🎨 No sticker sets found")
		fmt.Println("Create one by sending an image to the bot.")
		return nil
	}

	printView(a, view)
	return nil
}

// printView writes the gallery cards to the terminal, one card per set with
// its four preview slots.
func printView(a *app.App, view gallery.View) {
	width := 80
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	for _, card := range view.Cards {
		header := fmt.Sprintf("%s  (#%d, %d stickers", card.Title, card.ID, card.Count)
		if !card.CreatedAt.IsZero() {
			header += ", created " + card.CreatedAt.Format("2006-01-02")
		}
		header += ")"
		fmt.Println(truncate(header, width))

		var slots []string
		for _, slot := range card.Slots {
			slots = append(slots, describeSlot(a, slot))
		}
		fmt.Printf("  %s\n\n", strings.Join(slots, " "))
	}
}

// describeSlot renders one preview slot: resolved media metadata, the glyph
// fallback, or the inert add placeholder.
func describeSlot(a *app.App, slot gallery.Slot) string {
	if slot.Placeholder {
		return "[ + ]"
	}

	node, ok := a.Loader.Node(slot.NodeID)
	if !ok || !node.Resolved() {
		return fmt.Sprintf("[%s …]", slot.Descriptor.Glyph)
	}
	if node.Failed {
		return fmt.Sprintf("[%s]", slot.Descriptor.Glyph)
	}

	switch slot.Descriptor.Kind {
	case media.Animated:
		if node.Anim != nil {
			return fmt.Sprintf("[%s %d frames @%.0ffps]", slot.Descriptor.Glyph, node.Anim.Frames(), node.Anim.FrameRate)
		}
	default:
		if node.Raster != nil {
			return fmt.Sprintf("[%s %dx%d %s]", slot.Descriptor.Glyph, node.Raster.Width, node.Raster.Height, node.Raster.MimeType)
		}
	}
	return fmt.Sprintf("[%s]", slot.Descriptor.Glyph)
}

// truncate shortens s to at most width runes. Rune-based so multibyte titles
// and glyphs never get split into invalid UTF-8.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 4 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
