package progression

import (
	"math"

	"github.com/nutriquest-app/nutriquest/internal/app/formula"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// MaxLevelUpsPerGrant bounds how many levels a single experience grant can
// advance. Anything beyond the cap stays banked in CurrentExp and resolves
// on the next grant.
const MaxLevelUpsPerGrant = 5

// levelUpHealPct is the fraction of max HP restored per level gained.
const levelUpHealPct = 0.20

// ExpResult reports what a grant actually did after rate scaling and
// level-up resolution.
type ExpResult struct {
	Granted      int64 // post-rate amount added to the ledger
	LevelsGained int
	NewLevel     int
	Healed       int
}

// AddExperience applies amount×rate to the hero and resolves level-ups.
// Each level gained grants one skill point and heals a fifth of max HP.
// Returns the applied grant so callers can record it for reversal.
func AddExperience(h *domain.Hero, amount, rate float64, maxHP int) ExpResult {
	granted := int64(math.Floor(formula.Sanitize(amount) * formula.Sanitize(rate)))
	if granted < 0 {
		granted = 0
	}
	h.CurrentExp += granted

	res := ExpResult{Granted: granted}
	for res.LevelsGained < MaxLevelUpsPerGrant && h.Level < domain.MaxLevel {
		need := formula.NextLevelExp(h.Level)
		if h.CurrentExp < need {
			break
		}
		h.CurrentExp -= need
		h.Level++
		h.SkillPoints++
		res.LevelsGained++
		res.Healed += Heal(h, int(float64(maxHP)*levelUpHealPct), maxHP)
	}
	res.NewLevel = h.Level
	return res
}

// RemoveExperience is the exact inverse of a prior grant: it subtracts the
// recorded amount and walks levels back down, reclaiming the skill points
// those levels granted. Level never drops below 1. Healing from the
// original level-ups is not unwound here; the caller reverses recorded HP
// deltas separately.
func RemoveExperience(h *domain.Hero, granted int64) {
	if granted <= 0 {
		return
	}
	h.CurrentExp -= granted
	for h.CurrentExp < 0 && h.Level > 1 {
		h.Level--
		h.SkillPoints--
		h.CurrentExp += formula.NextLevelExp(h.Level)
	}
	if h.CurrentExp < 0 {
		h.CurrentExp = 0
	}
	if h.SkillPoints < 0 {
		h.SkillPoints = 0
	}
}
