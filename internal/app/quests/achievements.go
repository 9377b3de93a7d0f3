package quests

import (
	"time"

	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
	"github.com/nutriquest-app/nutriquest/internal/infra/sqlite"
)

// Checker evaluates achievement predicates against aggregate hero stats
// and records one-way unlocks.
type Checker struct {
	db *sqlite.DB
}

// NewChecker creates an achievement checker over the given store.
func NewChecker(db *sqlite.DB) *Checker {
	return &Checker{db: db}
}

// Check runs every predicate and unlocks what newly passes. Unlocking is
// idempotent; already-unlocked achievements are never returned again.
func (c *Checker) Check(stats domain.HeroStats, now time.Time) ([]domain.AchievementDef, error) {
	var unlocked []domain.AchievementDef
	for _, def := range catalog.Achievements() {
		if def.Predicate == nil || !def.Predicate(stats) {
			continue
		}
		newly, err := c.db.UnlockAchievement(def.ID, now)
		if err != nil {
			return unlocked, err
		}
		if newly {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked, nil
}

// Equip toggles whether an unlocked achievement's gear is worn.
func (c *Checker) Equip(id string, equipped bool) error {
	ok, err := c.db.IsAchievementUnlocked(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAchievementLocked
	}
	return c.db.SetAchievementEquipped(id, equipped)
}

// EquippedGear resolves the equipment rewards of all currently equipped
// achievements. Feeds stat derivation and the daily energy target.
func (c *Checker) EquippedGear() ([]domain.Equipment, error) {
	unlocked, err := c.db.ListUnlockedAchievements()
	if err != nil {
		return nil, err
	}
	byID := map[string]domain.Equipment{}
	for _, def := range catalog.Achievements() {
		byID[def.ID] = def.Reward
	}

	var gear []domain.Equipment
	for _, u := range unlocked {
		if !u.Equipped {
			continue
		}
		if eq, ok := byID[u.ID]; ok {
			gear = append(gear, eq)
		}
	}
	return gear, nil
}
