// Package progression is the hero's ledger: experience and levels, skill
// points and trees, gold, streaks and the daily settlement. Derived combat
// stats are recomputed on demand from the lifetime pools — nothing here is
// a stored authoritative stat except what the Hero struct carries.
package progression

import (
	"github.com/nutriquest-app/nutriquest/internal/app/formula"
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
)

// Pool divisors and bases for stat derivation.
const (
	proteinDivisor  = 50   // grams of protein per strength point
	exerciseDivisor = 30   // minutes of exercise per agility point
	calorieDivisor  = 2000 // kcal per vitality point
	statBase        = 5
)

// Derived is the full snapshot of recomputed combat state. Valid for one
// logical tick; recompute after any mutation.
type Derived struct {
	Strength int
	Agility  int
	Vitality int

	MaxHP       int
	DodgePct    int // chance (0–100) to avoid retaliation
	Block       int // flat retaliation reduction
	GearPower   int
	CombatPower int

	ExpRate float64 // multiplier applied to every experience grant
}

// Derive recomputes all combat stats from the hero's pools, race traits,
// passive skills and equipped gear.
func Derive(h *domain.Hero, equipped []domain.Equipment) Derived {
	traits := h.Race.Traits()

	var strMult, agiMult, hpMult, expBonus float64
	var block int
	for id, lvl := range h.LearnedSkills {
		node := catalog.SkillByID(id)
		if node == nil || lvl <= 0 {
			continue
		}
		switch node.Effect {
		case domain.EffectStrengthMult:
			strMult += node.ValuePerLevel * float64(lvl)
		case domain.EffectAgilityMult:
			agiMult += node.ValuePerLevel * float64(lvl)
		case domain.EffectMaxHPMult:
			hpMult += node.ValuePerLevel * float64(lvl)
		case domain.EffectExpRate:
			expBonus += node.ValuePerLevel * float64(lvl)
		case domain.EffectBlock:
			block += int(node.ValuePerLevel * float64(lvl))
		}
	}

	d := Derived{
		Strength: formula.DeriveStat(h.ProteinPool, proteinDivisor, statBase, traits.Strength*(1+strMult), h.Level),
		Agility:  formula.DeriveStat(h.ExercisePool, exerciseDivisor, statBase, traits.Agility*(1+agiMult), h.Level),
		Vitality: formula.DeriveStat(h.CaloriePool, calorieDivisor, statBase, traits.Vitality, h.Level),
		Block:    block,
	}

	limit := formula.StatCap(h.Level)
	for _, eq := range equipped {
		switch eq.Stat {
		case domain.EquipStrength:
			d.Strength = minInt(d.Strength+eq.Bonus, limit)
		case domain.EquipAgility:
			d.Agility = minInt(d.Agility+eq.Bonus, limit)
		case domain.EquipVitality:
			d.Vitality = minInt(d.Vitality+eq.Bonus, limit)
		case domain.EquipBlock:
			d.Block += eq.Bonus
		}
		d.GearPower += eq.Power
	}

	d.MaxHP = formula.SanitizeInt((100 + 10*float64(d.Vitality)) * traits.MaxHP * (1 + hpMult))
	if d.MaxHP < 1 {
		d.MaxHP = 1
	}

	d.DodgePct = 5 + d.Agility/2
	if d.DodgePct > 60 {
		d.DodgePct = 60
	}

	d.ExpRate = 1.0 + expBonus + StreakExpBonus(h.LoginStreak)
	d.CombatPower = formula.CombatPower(h.CurrentExp, d.Strength, d.Agility, d.Vitality, d.GearPower)
	return d
}

// StreakExpBonus grants +1% experience per consecutive login day, capped
// at +10%.
func StreakExpBonus(streak int) float64 {
	if streak < 1 {
		return 0
	}
	bonus := float64(streak) * 0.01
	if bonus > 0.10 {
		bonus = 0.10
	}
	return bonus
}

// Heal restores HP, clamped at the derived max. Returns the amount
// actually applied so callers can record it for exact reversal.
func Heal(h *domain.Hero, amount, maxHP int) int {
	if amount <= 0 {
		return 0
	}
	before := h.CurrentHP
	h.CurrentHP += amount
	if h.CurrentHP > maxHP {
		h.CurrentHP = maxHP
	}
	return h.CurrentHP - before
}

// ApplyDamage hits the hero: shield absorbs first, then HP, which never
// goes below zero. Returns the shield and HP portions actually applied.
func ApplyDamage(h *domain.Hero, amount int) (shieldLoss, hpLoss int) {
	if amount <= 0 {
		return 0, 0
	}
	shieldLoss = amount
	if shieldLoss > h.Shield {
		shieldLoss = h.Shield
	}
	h.Shield -= shieldLoss

	hpLoss = amount - shieldLoss
	if hpLoss > h.CurrentHP {
		hpLoss = h.CurrentHP
	}
	h.CurrentHP -= hpLoss
	return shieldLoss, hpLoss
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
