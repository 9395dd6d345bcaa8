package gallery

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/liminalpurple/sticker-gallery/internal/media"
)

// TestRender_FixedSlotGrid verifies every card gets exactly four slots
func TestRender_FixedSlotGrid(t *testing.T) {
	cases := []struct {
		name    string
		entries int
		real    int
	}{
		{"no media", 0, 0},
		{"two media", 2, 2},
		{"four media", 4, 4},
		{"six media", 6, 4},
	}

	for _, tc := range cases {
		var entries []StickerEntry
		for i := 0; i < tc.entries; i++ {
			entries = append(entries, StickerEntry{FileID: string(rune('a' + i))})
		}
		view := Render([]Record{recordWithEntries(entries...)})

		if len(view.Cards) != 1 {
			t.Fatalf("%s: expected 1 card, got %d", tc.name, len(view.Cards))
		}

		real := 0
		for _, slot := range view.Cards[0].Slots {
			if !slot.Placeholder {
				real++
			}
		}
		if real != tc.real {
			t.Errorf("%s: expected %d real slots, got %d", tc.name, tc.real, real)
		}

		// Real slots lead, placeholders trail.
		for i := 0; i < real; i++ {
			if view.Cards[0].Slots[i].Placeholder {
				t.Errorf("%s: slot %d should be real", tc.name, i)
			}
		}
	}
}

// TestRender_ListingScenario verifies the full decode-to-card path
func TestRender_ListingScenario(t *testing.T) {
	body := []byte(`{"content":[{"id":1,"title":"Cats","name":"cats_by_bot","createdAt":"2025-09-15T10:30:00","previewSource":{"stickers":[{"file_id":"f1","emoji":"😺"},{"file_id":"f2","is_animated":true}]}}]}`)

	view := Render(Normalize(body))

	if len(view.Cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(view.Cards))
	}
	card := view.Cards[0]
	if card.Title != "Cats" {
		t.Errorf("Expected title Cats, got %q", card.Title)
	}
	if card.Count != 2 {
		t.Errorf("Expected 2 stickers, got %d", card.Count)
	}
	if card.Slots[0].Descriptor.SourceLocator != "/api/stickers/f1" {
		t.Errorf("Unexpected slot locator: %s", card.Slots[0].Descriptor.SourceLocator)
	}
	if card.Slots[1].Descriptor.Kind != media.Animated {
		t.Error("Second slot should be animated")
	}
	if !card.Slots[2].Placeholder || !card.Slots[3].Placeholder {
		t.Error("Trailing slots should be placeholders")
	}
}

// TestNodes_SkipsPlaceholders verifies only real slots get pending nodes
func TestNodes_SkipsPlaceholders(t *testing.T) {
	view := Render([]Record{recordWithEntries(
		StickerEntry{FileID: "a"},
		StickerEntry{FileID: "b"},
	)})

	nodes := Nodes(view)
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(nodes))
	}
	for _, node := range nodes {
		if node.Resolved() {
			t.Errorf("Node %s should start pending", node.ID)
		}
	}
}

// TestRenderDetail_FullCollection verifies detail views are not capped
func TestRenderDetail_FullCollection(t *testing.T) {
	var entries []StickerEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, StickerEntry{FileID: string(rune('a' + i))})
	}

	detail := RenderDetail(recordWithEntries(entries...))
	if len(detail.Nodes) != 7 {
		t.Errorf("Expected 7 detail nodes, got %d", len(detail.Nodes))
	}
	if detail.Card.Count != 7 {
		t.Errorf("Expected count 7, got %d", detail.Card.Count)
	}
}

// TestSummary_ContainsCards verifies the markdown digest
func TestSummary_ContainsCards(t *testing.T) {
	view := Render([]Record{recordWithEntries(StickerEntry{FileID: "a", Emoji: "😺"})})

	summary := Summary(view)
	if !strings.Contains(summary, "## Cats") {
		t.Errorf("Summary missing card heading:\n%s", summary)
	}
	if !strings.Contains(summary, "😺") {
		t.Error("Summary missing preview glyphs")
	}

	html := SummaryHTML(view)
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "Cats") {
		t.Errorf("HTML summary missing rendered heading:\n%s", html)
	}
}

// TestSummary_EmptyGallery verifies the empty state message
func TestSummary_EmptyGallery(t *testing.T) {
	summary := Summary(Render(nil))
	if !strings.Contains(summary, "No sticker sets") {
		t.Errorf("Expected empty-state message, got:\n%s", summary)
	}
}

// TestView_RepeatedRenderIsStable verifies rendering is pure
func TestView_RepeatedRenderIsStable(t *testing.T) {
	records := []Record{recordWithEntries(StickerEntry{FileID: "a"})}

	first, _ := json.Marshal(Render(records))
	second, _ := json.Marshal(Render(records))
	if string(first) != string(second) {
		t.Error("Render should be deterministic over the same records")
	}
}
