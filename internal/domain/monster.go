package domain

// WeaknessType is the eating pattern a monster is vulnerable to.
type WeaknessType string

const (
	WeaknessLowCarb     WeaknessType = "low-carb"
	WeaknessLowFat      WeaknessType = "low-fat"
	WeaknessHighProtein WeaknessType = "high-protein"
	WeaknessNone        WeaknessType = "" // no weakness interaction
)

// Monster is a minion or boss encountered during a day's progression.
type Monster struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Icon     string       `json:"icon"`
	Weakness WeaknessType `json:"weakness"`
	Boss     bool         `json:"boss"`
	// EnragedName is shown when the day is overloaded; empty = same name.
	EnragedName string `json:"enraged_name,omitempty"`
}

// Environment is the day's global battle modifier, picked deterministically
// from the date. Multiplier stays within ±5–10% of 1.0.
type Environment struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// StageKind discriminates minion and boss encounters.
type StageKind string

const (
	StageMinion StageKind = "MINION"
	StageBoss   StageKind = "BOSS"
)

// StageInfo is the derived stage/boss progress for a day. It is a pure
// function of (cumulative effective damage, daily target) and is never
// stored — recompute on every read.
type StageInfo struct {
	Kind        StageKind `json:"kind"`
	Index       int       `json:"index"`        // minion index, or MinionCount when boss
	MinionCount int       `json:"minion_count"` // N
	StageHP     int       `json:"stage_hp"`     // full HP of the current stage
	RemainingHP int       `json:"remaining_hp"` // HP left in the current stage
	BossHP      int       `json:"boss_hp"`      // full boss pool (target − N×minionHP)
	Cumulative  int       `json:"cumulative"`   // total effective damage today
	Target      int       `json:"target"`       // daily energy target
	Overloaded  bool      `json:"overloaded"`   // cumulative > target — boss enrages
	Cleared     bool      `json:"cleared"`      // cumulative within [target, 1.1×target]
}
