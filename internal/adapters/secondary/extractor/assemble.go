package extractor

import (
	"strings"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// Assembler builds slides from a classified block sequence. A level-1
// heading opens a slide; every following block belongs to it until the next
// level-1 heading.
type Assembler struct{}

// NewAssembler creates an Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble walks the blocks in document order and returns one slide per
// level-1 heading. Blocks before the first boundary are dropped; zero
// boundaries yield nil, which upstream reports as no slides found. Each
// slide body opens with the synthesized title line, fragments are joined by
// blank lines, and a fragment already emitted for the slide is suppressed
// on repetition.
func (a *Assembler) Assemble(blocks []Block) []entities.Slide {
	var slides []entities.Slide
	var current *slideDraft

	for _, block := range blocks {
		if block.Type == BlockHeading1 {
			slides = appendDraft(slides, current)
			current = newSlideDraft(block)
			continue
		}
		if current == nil {
			continue
		}
		current.add(block)
	}
	return appendDraft(slides, current)
}

// slideDraft accumulates one slide's body. emitted tracks exact fragment
// strings already in the body, seeded with the title line so the title can
// never reappear as a duplicate heading.
type slideDraft struct {
	title   string
	body    strings.Builder
	emitted map[string]struct{}
}

func newSlideDraft(boundary Block) *slideDraft {
	draft := &slideDraft{
		title:   strings.TrimSpace(boundary.Text),
		emitted: make(map[string]struct{}),
	}
	if draft.title != "" {
		titleLine := boundary.Markdown()
		draft.body.WriteString(titleLine)
		draft.emitted[titleLine] = struct{}{}
	}
	return draft
}

func (d *slideDraft) add(block Block) {
	fragment := block.Markdown()
	if strings.TrimSpace(fragment) == "" {
		return
	}
	if _, seen := d.emitted[fragment]; seen {
		return
	}
	d.emitted[fragment] = struct{}{}
	d.body.WriteString("\n\n")
	d.body.WriteString(fragment)
}

// appendDraft finalizes the draft, discarding one whose body trims to
// nothing.
func appendDraft(slides []entities.Slide, draft *slideDraft) []entities.Slide {
	if draft == nil {
		return slides
	}
	content := strings.TrimSpace(draft.body.String())
	if content == "" {
		return slides
	}
	return append(slides, entities.Slide{
		Title:   draft.title,
		Content: content,
	})
}
