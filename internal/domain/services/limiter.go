package services

import (
	"github.com/google/uuid"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// UpgradeSlideTitle is the title of the synthetic slide appended when the
// free-tier cap truncates a deck.
const UpgradeSlideTitle = "Unlock the Full Deck"

// upgradeSlideContent is the fixed call-to-action shown on the upgrade slide.
const upgradeSlideContent = "# " + UpgradeSlideTitle + "\n\n" +
	"This deck has more slides than the free plan includes.\n\n" +
	"Upgrade to unlock the complete presentation and export it without limits."

// Limiter enforces the free-tier slide cap. It is a pure policy: the
// entitlement decision is resolved by the caller, so Apply never performs
// I/O and is trivially testable.
type Limiter struct {
	maxFree int
}

// NewLimiter creates a limiter with the given cap; values below 1 fall back
// to the default.
func NewLimiter(maxFree int) *Limiter {
	if maxFree < 1 {
		maxFree = entities.DefaultMaxFreeSlides
	}
	return &Limiter{maxFree: maxFree}
}

// MaxFree returns the configured cap.
func (l *Limiter) MaxFree() int {
	return l.maxFree
}

// Apply enforces the cap on a normalized slide list. Entitled users, and
// decks at or under the cap, pass through unchanged. Anything longer is cut
// to the first maxFree slides with one upgrade slide appended. The input
// slice is never reordered or mutated; truncation always drops from the
// tail.
func (l *Limiter) Apply(slides []entities.Slide, entitled bool) []entities.Slide {
	if entitled || len(slides) <= l.maxFree {
		return slides
	}

	out := make([]entities.Slide, 0, l.maxFree+1)
	out = append(out, slides[:l.maxFree]...)
	out = append(out, newUpgradeSlide())

	return out
}

// newUpgradeSlide builds the synthetic terminal slide.
func newUpgradeSlide() entities.Slide {
	return entities.Slide{
		ID:         uuid.NewString(),
		Title:      UpgradeSlideTitle,
		Content:    upgradeSlideContent,
		SourceType: entities.SourceUpgrade,
	}
}
