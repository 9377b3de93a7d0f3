// Package domain holds the pure types of the NutriQuest engine.
// The hero, their food logs, the monsters they fight and the quests they
// chase live here — no infrastructure dependency, no framework.
package domain

import "time"

// Race determines stat growth multipliers and which skill tree applies.
type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceOrc    Race = "ORC"
	RaceElf    Race = "ELF"
	RaceUndead Race = "UNDEAD"
)

// IsValid reports whether r is one of the four playable races.
func (r Race) IsValid() bool {
	switch r {
	case RaceHuman, RaceOrc, RaceElf, RaceUndead:
		return true
	}
	return false
}

// RaceTraits are the per-race growth multipliers.
type RaceTraits struct {
	Strength float64
	Agility  float64
	Vitality float64
	MaxHP    float64
}

// Traits returns the growth multipliers for a race.
// Unknown races fall back to human growth.
func (r Race) Traits() RaceTraits {
	switch r {
	case RaceOrc:
		return RaceTraits{Strength: 1.2, Agility: 0.9, Vitality: 1.1, MaxHP: 1.1}
	case RaceElf:
		return RaceTraits{Strength: 0.9, Agility: 1.2, Vitality: 1.0, MaxHP: 0.95}
	case RaceUndead:
		return RaceTraits{Strength: 1.0, Agility: 0.9, Vitality: 1.2, MaxHP: 1.05}
	default:
		return RaceTraits{Strength: 1.0, Agility: 1.0, Vitality: 1.0, MaxHP: 1.0}
	}
}

// Gender is used by the BMR formula (the sign term differs).
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Goal shifts the daily energy target.
type Goal string

const (
	GoalLose     Goal = "LOSE"
	GoalMaintain Goal = "MAINTAIN"
	GoalGain     Goal = "GAIN"
)

// Offset returns the kcal adjustment applied after the activity multiplier.
func (g Goal) Offset() float64 {
	switch g {
	case GoalLose:
		return -400
	case GoalGain:
		return 300
	default:
		return 0
	}
}

// Consumable item IDs recognized by the progression ledger.
const (
	ItemRebirthPotion = "rebirth_potion"
	ItemStreakFreeze  = "streak_freeze"
)

// MaxLevel is the hard level cap.
const MaxLevel = 100

// Hero is the complete mutable progression + vitality state of the player.
// Max HP and the three combat stats are NOT stored here — they are derived
// on demand from the lifetime pools, race traits and passive skills.
type Hero struct {
	Race        Race           `json:"race"`
	Level       int            `json:"level"`
	CurrentExp  int64          `json:"current_exp"`
	SkillPoints int            `json:"skill_points"`
	Gold        int64          `json:"gold"`
	Inventory   map[string]int `json:"inventory"`

	// Learned skills: node ID → learned level (≤ node max level).
	LearnedSkills map[string]int `json:"learned_skills"`
	// ActiveSkill is a one-shot skill armed for the next battle ("" = none).
	ActiveSkill string `json:"active_skill"`

	LoginStreak   int    `json:"login_streak"`
	LastLoginDate string `json:"last_login_date"` // YYYY-MM-DD, local

	// Vitality. CurrentHP is authoritative; max HP is derived.
	CurrentHP int `json:"current_hp"`
	Shield    int `json:"shield"`

	// Combo state for the battle engine.
	ComboCount  int       `json:"combo_count"`
	ComboLastAt time.Time `json:"combo_last_at"`

	// Lifetime pools feeding stat derivation.
	ProteinPool  float64 `json:"protein_pool"`  // grams of protein ever logged
	ExercisePool float64 `json:"exercise_pool"` // minutes of exercise ever logged
	CaloriePool  float64 `json:"calorie_pool"`  // kcal ever logged
}

// NewHero creates a fresh level-1 hero of the given race.
func NewHero(race Race) *Hero {
	return &Hero{
		Race:          race,
		Level:         1,
		LoginStreak:   1,
		CurrentHP:     100,
		Inventory:     map[string]int{},
		LearnedSkills: map[string]int{},
	}
}

// Exhausted reports whether the hero's HP has been depleted.
// Exhaustion halves damage multipliers and experience gains.
func (h *Hero) Exhausted() bool {
	return h.CurrentHP <= 0
}

// HasItem reports whether at least one of the consumable is held.
func (h *Hero) HasItem(id string) bool {
	return h.Inventory[id] > 0
}

// ConsumeItem removes one unit of a consumable. Reports success.
func (h *Hero) ConsumeItem(id string) bool {
	if h.Inventory[id] <= 0 {
		return false
	}
	h.Inventory[id]--
	return true
}

// AddItem grants n units of a consumable.
func (h *Hero) AddItem(id string, n int) {
	if h.Inventory == nil {
		h.Inventory = map[string]int{}
	}
	h.Inventory[id] += n
}
