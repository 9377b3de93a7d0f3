package battle

import (
	"time"

	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Combo window and cap.
const (
	ComboWindow = 3 * time.Hour
	MaxCombo    = 10
)

// AdvanceCombo applies one log to the hero's rolling combo counter and
// returns the new value. A bad tag hard-resets to 0 regardless of timing.
// A good tag extends the chain inside the window and starts a fresh chain
// of 1 outside it. A neutral log inside the window leaves the chain alone;
// outside, the chain has lapsed to 0.
func AdvanceCombo(h *domain.Hero, tags domain.TagSet, now time.Time) int {
	inWindow := !h.ComboLastAt.IsZero() && now.Sub(h.ComboLastAt) <= ComboWindow

	switch {
	case tags.HasBad():
		h.ComboCount = 0
		h.ComboLastAt = now
	case tags.HasGood():
		if inWindow && h.ComboCount > 0 {
			if h.ComboCount < MaxCombo {
				h.ComboCount++
			}
		} else {
			h.ComboCount = 1
		}
		h.ComboLastAt = now
	default:
		if !inWindow {
			h.ComboCount = 0
		}
	}
	return h.ComboCount
}

// ComboMultiplier is 1 + 10% per combo step past the first.
func ComboMultiplier(combo int) float64 {
	if combo <= 1 {
		return 1.0
	}
	return 1 + float64(combo-1)*0.1
}
