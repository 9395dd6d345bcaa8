package gallery

import (
	"github.com/liminalpurple/sticker-gallery/internal/api"
	"github.com/liminalpurple/sticker-gallery/internal/media"
)

// PreviewSlots is the fixed number of preview positions per gallery card.
// A layout invariant, not a data constraint: real descriptors fill leading
// slots, the rest render as inert "add" placeholders.
const PreviewSlots = 4

// DefaultGlyph decorates entries that supply no emoji of their own.
const DefaultGlyph = "🎨"

// Previews derives up to PreviewSlots media descriptors from a record's
// preview collection. A missing collection yields an empty sequence.
func Previews(record Record) []media.Descriptor {
	entries := record.PreviewSource.Stickers
	if len(entries) > PreviewSlots {
		entries = entries[:PreviewSlots]
	}

	descriptors := make([]media.Descriptor, 0, len(entries))
	for _, entry := range entries {
		descriptors = append(descriptors, Describe(entry))
	}
	return descriptors
}

// Describe derives the media descriptor for one collection entry.
func Describe(entry StickerEntry) media.Descriptor {
	kind := media.Static
	if entry.IsAnimated {
		kind = media.Animated
	}

	glyph := entry.Emoji
	if glyph == "" {
		glyph = DefaultGlyph
	}

	return media.Descriptor{
		Kind:          kind,
		SourceLocator: api.MediaPath(entry.FileID),
		Glyph:         glyph,
	}
}

// Count returns the total size of the record's media collection, independent
// of the preview cap. Display only ("N stickers").
func Count(record Record) int {
	return len(record.PreviewSource.Stickers)
}
