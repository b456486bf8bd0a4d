package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_Assemble(t *testing.T) {
	assembler := NewAssembler()

	t.Run("one slide per boundary in document order", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "Intro"},
			{Type: BlockParagraph, Text: "Welcome."},
			{Type: BlockParagraph, Text: "Glad you are here."},
			{Type: BlockHeading1, Text: "Details"},
			{Type: BlockList, Text: "the only point"},
			{Type: BlockHeading1, Text: "Thanks"},
			{Type: BlockQuote, Text: "bye"},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 3)
		assert.Equal(t, "Intro", slides[0].Title)
		assert.Equal(t, "Details", slides[1].Title)
		assert.Equal(t, "Thanks", slides[2].Title)
		assert.Equal(t, "# Intro\n\nWelcome.\n\nGlad you are here.", slides[0].Content)
		assert.Equal(t, "# Details\n\n- the only point", slides[1].Content)
		assert.Equal(t, "# Thanks\n\n> bye", slides[2].Content)
	})

	t.Run("repeated fragment is emitted once per slide", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "Numbers"},
			{Type: BlockParagraph, Text: "Revenue is up."},
			{Type: BlockParagraph, Text: "Revenue is up."},
			{Type: BlockParagraph, Text: "Costs are down."},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 1)
		assert.Equal(t, 1, strings.Count(slides[0].Content, "Revenue is up."))
		assert.Contains(t, slides[0].Content, "Costs are down.")
	})

	t.Run("suppression does not leak across slides", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "First"},
			{Type: BlockParagraph, Text: "Shared line."},
			{Type: BlockHeading1, Text: "Second"},
			{Type: BlockParagraph, Text: "Shared line."},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 2)
		assert.Contains(t, slides[0].Content, "Shared line.")
		assert.Contains(t, slides[1].Content, "Shared line.")
	})

	t.Run("a shorter fragment is not swallowed by a longer one", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "Sets"},
			{Type: BlockParagraph, Text: "deploy the service now"},
			{Type: BlockParagraph, Text: "deploy"},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 1)
		// Exact-match suppression: "deploy" is a substring of the earlier
		// fragment but still a distinct fragment of its own.
		assert.Equal(t, "# Sets\n\ndeploy the service now\n\ndeploy", slides[0].Content)
	})

	t.Run("title line appears exactly once", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "Intro"},
			{Type: BlockParagraph, Text: "body"},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 1)
		assert.Equal(t, 1, strings.Count(slides[0].Content, "# Intro"))
		assert.True(t, strings.HasPrefix(slides[0].Content, "# Intro"))
	})

	t.Run("level-2 headings stay inside their slide", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "Report"},
			{Type: BlockHeading2, Text: "Revenue"},
			{Type: BlockParagraph, Text: "Up."},
			{Type: BlockHeading2, Text: "Costs"},
			{Type: BlockParagraph, Text: "Down."},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 1)
		assert.Equal(t, "# Report\n\n## Revenue\n\nUp.\n\n## Costs\n\nDown.", slides[0].Content)
	})

	t.Run("content before the first boundary is dropped", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockParagraph, Text: "stray preamble"},
			{Type: BlockHeading1, Text: "Start"},
			{Type: BlockParagraph, Text: "body"},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 1)
		assert.NotContains(t, slides[0].Content, "stray preamble")
	})

	t.Run("zero boundaries yield no slides", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockParagraph, Text: "text without any structure"},
			{Type: BlockList, Text: "a point"},
		}

		assert.Empty(t, assembler.Assemble(blocks))
	})

	t.Run("empty input yields no slides", func(t *testing.T) {
		assert.Empty(t, assembler.Assemble(nil))
	})

	t.Run("skip blocks contribute nothing", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "Clean"},
			{Type: BlockSkip, Text: "invisible"},
			{Type: BlockParagraph, Text: "visible"},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 1)
		assert.Equal(t, "# Clean\n\nvisible", slides[0].Content)
		assert.NotContains(t, slides[0].Content, "invisible")
	})

	t.Run("boundary-only slide keeps its title line", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "Just a Title"},
		}

		slides := assembler.Assemble(blocks)

		require.Len(t, slides, 1)
		assert.Equal(t, "# Just a Title", slides[0].Content)
	})

	t.Run("slide with empty title and no content is discarded", func(t *testing.T) {
		blocks := []Block{
			{Type: BlockHeading1, Text: "   "},
		}

		assert.Empty(t, assembler.Assemble(blocks))
	})
}
