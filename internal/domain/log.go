package domain

import "time"

// LogKind discriminates the tagged union of daily log entries.
type LogKind string

const (
	LogFood     LogKind = "food"
	LogExercise LogKind = "exercise"
	LogWater    LogKind = "water"
)

// Tag is a derived classification of a logged item.
type Tag string

const (
	TagHighCarb    Tag = "high-carb"
	TagHighProtein Tag = "high-protein"
	TagHighFat     Tag = "high-fat"
	TagHighSugar   Tag = "high-sugar"
	TagHighSodium  Tag = "high-sodium"
	TagClean       Tag = "clean"
	TagBalanced    Tag = "balanced"
	TagVegetable   Tag = "vegetable"
)

// Bad reports whether the tag hard-resets the combo counter.
func (t Tag) Bad() bool {
	return t == TagHighSugar || t == TagHighFat || t == TagHighSodium
}

// Good reports whether the tag extends a combo.
func (t Tag) Good() bool {
	return t == TagClean || t == TagHighProtein || t == TagBalanced
}

// TagSet is an ordered, duplicate-free set of tags.
type TagSet []Tag

// Has reports whether the set contains t.
func (s TagSet) Has(t Tag) bool {
	for _, x := range s {
		if x == t {
			return true
		}
	}
	return false
}

// Add appends t if not already present.
func (s TagSet) Add(t Tag) TagSet {
	if s.Has(t) {
		return s
	}
	return append(s, t)
}

// HasBad reports whether any combo-breaking tag is present.
func (s TagSet) HasBad() bool {
	for _, t := range s {
		if t.Bad() {
			return true
		}
	}
	return false
}

// HasGood reports whether any combo-extending tag is present.
func (s TagSet) HasGood() bool {
	for _, t := range s {
		if t.Good() {
			return true
		}
	}
	return false
}

// Macros are the numeric nutrition fields of a food item.
// Zero values are valid (an unknown macro contributes nothing).
type Macros struct {
	Calories float64 `json:"calories"` // kcal
	Protein  float64 `json:"protein"`  // g
	Carbs    float64 `json:"carbs"`    // g
	Fat      float64 `json:"fat"`      // g
	Sugar    float64 `json:"sugar"`    // g
	SodiumMg float64 `json:"sodium_mg"`
}

// BattleOutcome is recorded on a committed log entry so that deleting the
// entry can reverse its effects exactly. All amounts are the values that
// were actually applied (post-clamp), not the values that were attempted.
type BattleOutcome struct {
	Multiplier   float64 `json:"multiplier"`
	Damage       int     `json:"damage"`
	Resisted     bool    `json:"resisted"`
	Dodged       bool    `json:"dodged"`
	Combo        int     `json:"combo"`
	DamageTaken  int     `json:"damage_taken"` // applied to shield then HP
	ShieldTaken  int     `json:"shield_taken"` // portion absorbed by shield
	HealGranted  int     `json:"heal_granted"` // effective HP restored
	ExpGranted   int64   `json:"exp_granted"`  // post-rate amount added
	GoldGranted  int64   `json:"gold_granted"`
	SkillApplied string  `json:"skill_applied"` // active skill consumed, "" if none
}

// LogEntry is one committed food/exercise/hydration log.
// Entries are keyed by the user's local calendar date and ordered
// most-recent-first within a day.
type LogEntry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // YYYY-MM-DD, local
	Kind     LogKind `json:"kind"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	Category string  `json:"category"` // meal slot or exercise/vegetable class

	Macros      Macros  `json:"macros"`
	Grams       float64 `json:"grams"`        // food portion weight
	DurationMin float64 `json:"duration_min"` // exercise
	AmountML    float64 `json:"amount_ml"`    // hydration

	Tags        TagSet    `json:"tags"`
	IsPreset    bool      `json:"is_preset"`
	IsComposite bool      `json:"is_composite"` // user-saved combo meal
	CreatedAt   time.Time `json:"created_at"`

	Outcome BattleOutcome `json:"outcome"`
}

// LargeMealGrams is the portion weight at which tag inference switches
// from absolute thresholds to relative-density thresholds.
const LargeMealGrams = 250
