package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liminalpurple/sticker-gallery/internal/app"
	"github.com/liminalpurple/sticker-gallery/internal/config"
	"github.com/liminalpurple/sticker-gallery/internal/gallery"
	"github.com/liminalpurple/sticker-gallery/internal/session"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check backend connectivity and configuration",
		Long: `Check that all components are working correctly:

  - Configuration loads properly
  - Host credential presence and age
  - Backend auth-status verdict
  - Sticker set listing
  - Media cache availability
  - Preview media fetch and decode

This is useful for verifying setup before using the gallery.`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("🧪 Running gallery checks...")
	fmt.Println()

	// Check 1: Load configuration
	fmt.Print("📋 Loading configuration... ")
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌\n   Error: %v\n", err)
		return err
	}
	fmt.Printf("✅\n   Backend: %s (bot: %s)\n", cfg.API.BaseURL, cfg.API.BotName)

	a := app.New(cfg)
	defer a.Close()

	// Check 2: Host credential
	fmt.Print("🔑 Reading host credential... ")
	credential := a.Session.Credential()
	if credential == "" {
		fmt.Println("⚠️  none (public preview mode)")
	} else if age, err := session.Age(credential); err != nil {
		fmt.Printf("❌\n   Error: %v\n", err)
	} else {
		fmt.Printf("✅\n   Age: %ds (window: %ds)\n", age, cfg.Auth.MaxCredentialAge)
		if identity, ok := a.Session.Identity(); ok {
			fmt.Printf("   User: %s (%d)\n", identity.DisplayName(), identity.ID)
		}
	}

	// Check 3: Auth gate
	fmt.Print("🚪 Checking auth gate... ")
	verdict := a.Gate.Check(ctx)
	switch {
	case verdict.Anonymous:
		fmt.Println("✅ anonymous")
	case verdict.Authorized():
		fmt.Printf("✅ authenticated (%s)\n", verdict.Role)
	default:
		fmt.Printf("❌ %s: %s\n", verdict.Reason, verdict.Message)
		return fmt.Errorf("auth gate: %s", verdict.Reason)
	}

	// Check 4: Listing fetch
	fmt.Print("📚 Fetching sticker sets... ")
	fetchCredential := credential
	if verdict.Anonymous {
		fetchCredential = ""
	}
	records, err := gallery.Fetch(ctx, a.Client, fetchCredential)
	if err != nil {
		fmt.Printf("❌\n   Error: %v\n", err)
		return err
	}
	fmt.Printf("✅\n   Found %d sets\n", len(records))

	// Check 5: Media cache
	if a.Cache != nil {
		fmt.Print("💾 Pinging media cache... ")
		if a.Cache.Available(ctx) {
			fmt.Println("✅")
		} else {
			fmt.Println("⚠️  unreachable, media loads uncached")
		}
	}

	// Check 6: Resolve the first preview
	if len(records) > 0 {
		if previews := gallery.Previews(records[0]); len(previews) > 0 {
			fmt.Print("🖼️  Resolving first preview... ")
			view := gallery.Render(records[:1])
			nodes := gallery.Nodes(view)
			a.Sets.Replace(records)
			a.Loader.Mount(ctx, nodes[:1], nil)
			if nodes[0].Failed {
				fmt.Println("⚠️  fetch or decode failed (glyph fallback)")
			} else {
				fmt.Println("✅")
			}
		}
	}

	fmt.Println()
	fmt.Println("🎉 All checks passed! The gallery is ready.")
	return nil
}
