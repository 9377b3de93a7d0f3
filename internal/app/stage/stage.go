// Package stage derives the day's minion/boss progression from cumulative
// effective damage and the daily energy target. Nothing is stored: the
// whole state machine is a pure function recomputed on every read, so
// deleting or editing a log entry can never desynchronize it.
package stage

import "github.com/nutriquest-app/nutriquest/internal/domain"

// MinionHP is the fixed HP of every minion stage.
const MinionHP = 500

// bossReserveFrac is the share of the daily target always withheld for
// the boss, floored at MinionHP.
const bossReserveFrac = 0.4

// clearedFrac bounds the band above the target that still counts as a
// clean clear; past it the day is merely overloaded.
const clearedFrac = 1.1

// Layout splits a daily target into its minion count and boss HP pool.
// The boss reserve is max(MinionHP, floor(target×0.4)); whatever the
// minion pool cannot fill with whole minions spills into the boss.
func Layout(target int) (minions, bossHP int) {
	if target < MinionHP {
		return 0, target
	}
	reserve := int(float64(target) * bossReserveFrac)
	if reserve < MinionHP {
		reserve = MinionHP
	}
	minions = (target - reserve) / MinionHP
	bossHP = target - minions*MinionHP
	return minions, bossHP
}

// Compute resolves where the day stands: which stage is up, how much HP it
// has left, and whether the boss is down or the day has been overloaded.
func Compute(cumulative int64, target int) domain.StageInfo {
	if target < 1 {
		target = 1
	}
	if cumulative < 0 {
		cumulative = 0
	}

	minions, bossHP := Layout(target)
	info := domain.StageInfo{
		MinionCount: minions,
		BossHP:      bossHP,
		Cumulative:  int(cumulative),
		Target:      target,
		Cleared:     cumulative >= int64(target) && float64(cumulative) <= float64(target)*clearedFrac,
		Overloaded:  cumulative > int64(target),
	}

	idx := int(cumulative) / MinionHP
	if idx < minions {
		info.Kind = domain.StageMinion
		info.Index = idx
		info.StageHP = MinionHP
		info.RemainingHP = MinionHP - (int(cumulative) - idx*MinionHP)
		return info
	}

	info.Kind = domain.StageBoss
	info.Index = minions
	info.StageHP = bossHP
	info.RemainingHP = bossHP - (int(cumulative) - minions*MinionHP)
	if info.RemainingHP < 0 {
		info.RemainingHP = 0
	}
	return info
}
