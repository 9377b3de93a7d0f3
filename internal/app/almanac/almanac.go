// Package almanac provides the day's deterministic picks: boss, environment
// effect and rotating minion. Selection is a pure function of the date
// string, so the same calendar day yields the same encounter across app
// restarts — no random seed is ever stored.
package almanac

import (
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// DateHash reduces a date string (YYYY-MM-DD) to a stable non-negative
// number by summing character codes. Order-independent and cheap; all we
// need is a reproducible spread across candidate lists.
func DateHash(date string) int {
	sum := 0
	for _, c := range date {
		sum += int(c)
	}
	if sum < 0 {
		sum = 0
	}
	return sum
}

// PickIndex maps a date string onto an index into a list of n candidates.
// n ≤ 0 returns 0.
func PickIndex(date string, n int) int {
	if n <= 0 {
		return 0
	}
	return DateHash(date) % n
}

// MacroExcess names yesterday's dominant macro overshoot, which decides
// the pool today's boss is drawn from.
type MacroExcess string

const (
	ExcessCarbs MacroExcess = "carbs"
	ExcessFat   MacroExcess = "fat"
	ExcessNone  MacroExcess = "none"
)

// DominantExcess classifies a day's macro totals. Carbs and fat are
// compared against their rough share of the energy target (4 kcal/g and
// 9 kcal/g respectively); whichever overshoots more wins.
func DominantExcess(carbsG, fatG float64, targetKcal int) MacroExcess {
	if targetKcal <= 0 {
		return ExcessNone
	}
	// Reference split: 50% of energy from carbs, 30% from fat.
	carbRef := float64(targetKcal) * 0.5 / 4
	fatRef := float64(targetKcal) * 0.3 / 9

	carbOver := carbsG - carbRef
	fatOver := fatG - fatRef
	switch {
	case carbOver <= 0 && fatOver <= 0:
		return ExcessNone
	case carbOver >= fatOver:
		return ExcessCarbs
	default:
		return ExcessFat
	}
}

// Almanac performs the daily deterministic picks over a monster book and
// an environment list.
type Almanac struct {
	bosses  []domain.Monster
	minions []domain.Monster
	envs    []domain.Environment
}

// New creates an Almanac over the given candidate lists.
func New(bosses, minions []domain.Monster, envs []domain.Environment) *Almanac {
	return &Almanac{bosses: bosses, minions: minions, envs: envs}
}

// Boss picks today's boss. The candidate pool is narrowed to bosses whose
// weakness counters yesterday's dominant macro excess; the date string then
// indexes into the pool. Missing data degrades to a weakness-less default.
func (a *Almanac) Boss(date string, excess MacroExcess) domain.Monster {
	var want domain.WeaknessType
	switch excess {
	case ExcessCarbs:
		want = domain.WeaknessLowCarb
	case ExcessFat:
		want = domain.WeaknessLowFat
	default:
		want = domain.WeaknessHighProtein
	}

	var pool []domain.Monster
	for _, m := range a.bosses {
		if m.Weakness == want {
			pool = append(pool, m)
		}
	}
	if len(pool) == 0 {
		pool = a.bosses
	}
	if len(pool) == 0 {
		// No monster data at all: no weakness interaction.
		return domain.Monster{ID: "unknown", Name: "Shadow", Boss: true, Weakness: domain.WeaknessNone}
	}
	return pool[PickIndex(date, len(pool))]
}

// Minion picks the rotating minion for a stage index within a day.
func (a *Almanac) Minion(date string, stageIndex int) domain.Monster {
	if len(a.minions) == 0 {
		return domain.Monster{ID: "unknown-minion", Name: "Wisp", Weakness: domain.WeaknessNone}
	}
	if stageIndex < 0 {
		stageIndex = 0
	}
	idx := (PickIndex(date, len(a.minions)) + stageIndex) % len(a.minions)
	return a.minions[idx]
}

// Environment picks the day's environment effect.
func (a *Almanac) Environment(date string) domain.Environment {
	if len(a.envs) == 0 {
		return domain.Environment{ID: "calm", Name: "Calm", Multiplier: 1.0}
	}
	return a.envs[PickIndex(date, len(a.envs))]
}
