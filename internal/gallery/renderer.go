package gallery

import (
	"fmt"

	"github.com/liminalpurple/sticker-gallery/internal/media"
)

// Slot is one of the fixed preview positions on a card.
type Slot struct {
	NodeID     string
	Descriptor media.Descriptor

	// Placeholder marks the inert "add" slot rendered beyond the real
	// descriptor count.
	Placeholder bool
}

// Card is the view description of one sticker set.
type Card struct {
	ID        int64
	Name      string
	Title     string
	CreatedAt Timestamp
	Count     int
	Slots     [PreviewSlots]Slot
}

// View is the pure render output consumed by the presentation layer.
type View struct {
	Cards []Card
}

// Empty reports whether the gallery has nothing to show.
func (v View) Empty() bool {
	return len(v.Cards) == 0
}

// Render maps records to a view description. Pure: no side effects, safe to
// call repeatedly over the same records.
func Render(records []Record) View {
	cards := make([]Card, 0, len(records))
	for _, record := range records {
		card := Card{
			ID:        record.ID,
			Name:      record.Name,
			Title:     record.Title,
			CreatedAt: record.CreatedAt,
			Count:     Count(record),
		}

		descriptors := Previews(record)
		for i := 0; i < PreviewSlots; i++ {
			if i < len(descriptors) {
				card.Slots[i] = Slot{
					NodeID:     slotID(record.ID, i),
					Descriptor: descriptors[i],
				}
			} else {
				card.Slots[i] = Slot{Placeholder: true}
			}
		}

		cards = append(cards, card)
	}
	return View{Cards: cards}
}

// Nodes creates pending media nodes for every non-placeholder slot of the
// view, in card order. New nodes are created per render; the previous
// render's nodes are discarded with the view that owned them.
func Nodes(v View) []*media.Node {
	var nodes []*media.Node
	for _, card := range v.Cards {
		for _, slot := range card.Slots {
			if slot.Placeholder {
				continue
			}
			nodes = append(nodes, media.NewNode(slot.NodeID, slot.Descriptor))
		}
	}
	return nodes
}

// Detail is the expanded view of one record with its full media collection,
// not capped at the preview slots.
type Detail struct {
	Card  Card
	Nodes []*media.Node
}

// RenderDetail maps one record to its expanded view, with a pending node per
// collection entry.
func RenderDetail(record Record) Detail {
	view := Render([]Record{record})

	nodes := make([]*media.Node, 0, len(record.PreviewSource.Stickers))
	for i, entry := range record.PreviewSource.Stickers {
		id := fmt.Sprintf("detail-%d-slot-%d", record.ID, i)
		nodes = append(nodes, media.NewNode(id, Describe(entry)))
	}

	return Detail{Card: view.Cards[0], Nodes: nodes}
}

func slotID(recordID int64, index int) string {
	return fmt.Sprintf("set-%d-slot-%d", recordID, index)
}
