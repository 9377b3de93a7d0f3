package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Every failure in
// the core degrades to a no-op plus one of these; there are no fatal errors.

var (
	// Input invalidity
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrMissingName    = errors.New("item name is required")
	ErrUnknownRace    = errors.New("unknown race")
	ErrProfileMissing = errors.New("no hero profile — run 'nutriquest profile init' first")

	// Skill preconditions
	ErrSkillUnknown        = errors.New("unknown skill node")
	ErrSkillMaxed          = errors.New("skill already at max level")
	ErrSkillPoints         = errors.New("insufficient skill points")
	ErrSkillLevelGate      = errors.New("hero level below skill requirement")
	ErrSkillPowerGate      = errors.New("combat power below skill requirement")
	ErrSkillParentRequired = errors.New("prerequisite skill not learned")
	ErrSkillNotActive      = errors.New("skill has no active effect to arm")
	ErrSkillWrongRace      = errors.New("skill belongs to another race's tree")

	// Economy / inventory preconditions
	ErrInsufficientGold = errors.New("insufficient gold")
	ErrItemUnavailable  = errors.New("consumable not in inventory")

	// Rebirth
	ErrRebirthPotionRequired = errors.New("rebirth requires a rebirth potion")

	// Quests
	ErrQuestUnknown      = errors.New("unknown quest")
	ErrQuestSlotsFull    = errors.New("quest board full — at most 4 active quests")
	ErrQuestNotAccepted  = errors.New("quest is not accepted")
	ErrQuestNotCompleted = errors.New("quest is not completed")
	ErrQuestClaimed      = errors.New("quest reward already claimed")

	// Achievements
	ErrAchievementLocked = errors.New("achievement not unlocked")

	// Logs
	ErrLogNotFound = errors.New("log entry not found")
)
