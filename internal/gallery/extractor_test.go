package gallery

import (
	"testing"

	"github.com/liminalpurple/sticker-gallery/internal/media"
)

func recordWithEntries(entries ...StickerEntry) Record {
	return Record{
		ID:            3,
		Name:          "cats_by_bot",
		Title:         "Cats",
		PreviewSource: MediaCollection{Stickers: entries},
	}
}

// TestPreviews_CapAtFour verifies at most four descriptors come back
func TestPreviews_CapAtFour(t *testing.T) {
	record := recordWithEntries(
		StickerEntry{FileID: "a"},
		StickerEntry{FileID: "b"},
		StickerEntry{FileID: "c"},
		StickerEntry{FileID: "d"},
		StickerEntry{FileID: "e"},
		StickerEntry{FileID: "f"},
	)

	previews := Previews(record)
	if len(previews) != 4 {
		t.Fatalf("Expected 4 descriptors, got %d", len(previews))
	}
	if previews[0].SourceLocator != "/api/stickers/a" {
		t.Errorf("Unexpected locator: %s", previews[0].SourceLocator)
	}

	// Count stays independent of the preview cap.
	if Count(record) != 6 {
		t.Errorf("Expected count 6, got %d", Count(record))
	}
}

// TestPreviews_MissingCollection verifies absence yields empty, not error
func TestPreviews_MissingCollection(t *testing.T) {
	previews := Previews(Record{ID: 1})
	if len(previews) != 0 {
		t.Errorf("Expected no descriptors, got %d", len(previews))
	}
	if Count(Record{ID: 1}) != 0 {
		t.Error("Expected count 0 for missing collection")
	}
}

// TestPreviews_KindAndGlyph verifies the animated flag and glyph fallback
func TestPreviews_KindAndGlyph(t *testing.T) {
	record := recordWithEntries(
		StickerEntry{FileID: "x", Emoji: "😺", IsAnimated: false},
		StickerEntry{FileID: "y", IsAnimated: true},
	)

	previews := Previews(record)
	if previews[0].Kind != media.Static || previews[0].Glyph != "😺" {
		t.Errorf("Unexpected first descriptor: %+v", previews[0])
	}
	if previews[1].Kind != media.Animated {
		t.Errorf("Expected animated kind, got %v", previews[1].Kind)
	}
	if previews[1].Glyph != DefaultGlyph {
		t.Errorf("Expected default glyph fallback, got %q", previews[1].Glyph)
	}
}

// TestPreviews_FileIDEscaping verifies file ids are path-escaped into the locator
func TestPreviews_FileIDEscaping(t *testing.T) {
	previews := Previews(recordWithEntries(StickerEntry{FileID: "CAACAgIAAxUAAWjH_-abc"}))
	if previews[0].SourceLocator != "/api/stickers/CAACAgIAAxUAAWjH_-abc" {
		t.Errorf("Unexpected locator: %s", previews[0].SourceLocator)
	}
}
