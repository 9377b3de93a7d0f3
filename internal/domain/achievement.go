package domain

import "time"

// EquipSlot is where an achievement's equipment reward sits.
type EquipSlot string

const (
	SlotWeapon    EquipSlot = "weapon"
	SlotArmor     EquipSlot = "armor"
	SlotAccessory EquipSlot = "accessory"
)

// EquipStat selects which derived stat an equipment bonus feeds.
type EquipStat string

const (
	EquipStrength EquipStat = "strength"
	EquipAgility  EquipStat = "agility"
	EquipVitality EquipStat = "vitality"
	EquipBlock    EquipStat = "block"
)

// Equipment is the gear granted by unlocking an achievement. Equipped gear
// contributes additively to derived combat stats and to the daily energy
// target (via BMRBonus).
type Equipment struct {
	Slot     EquipSlot `json:"slot"`
	Stat     EquipStat `json:"stat"`
	Bonus    int       `json:"bonus"`
	Power    int       `json:"power"` // combat-power contribution
	BMRBonus int       `json:"bmr_bonus"`
}

// HeroStats is the aggregate snapshot fed to achievement predicates.
type HeroStats struct {
	Level           int
	LoginStreak     int
	Gold            int64
	TotalFoodLogs   int64
	TotalExercise   int64 // exercise log count
	TotalWaterML    float64
	LifetimeProtein float64
	LifetimeCal     float64
	BossesCleared   int64
	MaxCombo        int
	QuestsClaimed   int64
}

// AchievementDef defines one achievement: an unlock condition evaluated
// against HeroStats plus its equipment reward.
type AchievementDef struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Icon      string              `json:"icon"`
	Reward    Equipment           `json:"reward"`
	Predicate func(HeroStats) bool `json:"-"`
}

// UnlockedAchievement records a one-way false→true unlock.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Equipped   bool      `json:"equipped"`
}
