package domain

import "time"

// QuestType selects the progress rule applied on each committed log.
type QuestType string

const (
	QuestCount          QuestType = "count"           // any committed food log
	QuestProtein        QuestType = "protein"         // sum of protein grams
	QuestVegetable      QuestType = "vegetable"       // vegetable-category logs
	QuestWater          QuestType = "water"           // hydration ml
	QuestCalorieCeiling QuestType = "calorie-ceiling" // sum of kcal logged
	QuestLowCarb        QuestType = "low-carb"        // streak; a high-carb log resets to 0
	QuestLowFat         QuestType = "low-fat"
	QuestLowSugar       QuestType = "low-sugar"
	QuestCustom         QuestType = "custom" // manual progress only
)

// QuestRarity is the reward tier, D (lowest) through SS.
type QuestRarity string

const (
	RarityD  QuestRarity = "D"
	RarityC  QuestRarity = "C"
	RarityB  QuestRarity = "B"
	RarityA  QuestRarity = "A"
	RarityS  QuestRarity = "S"
	RaritySS QuestRarity = "SS"
)

// GoldReward returns the claim payout for a rarity tier.
func (r QuestRarity) GoldReward() int64 {
	switch r {
	case RarityC:
		return 40
	case RarityB:
		return 80
	case RarityA:
		return 150
	case RarityS:
		return 300
	case RaritySS:
		return 600
	default:
		return 20
	}
}

// QuestStatus is the quest lifecycle state machine:
// AVAILABLE → ACCEPTED → COMPLETED → CLAIMED, or ABANDONED back to none.
type QuestStatus string

const (
	QuestAvailable QuestStatus = "AVAILABLE"
	QuestAccepted  QuestStatus = "ACCEPTED"
	QuestCompleted QuestStatus = "COMPLETED"
	QuestClaimed   QuestStatus = "CLAIMED"
	QuestAbandoned QuestStatus = "ABANDONED"
)

// MaxActiveQuests bounds the number of simultaneously ACCEPTED or
// COMPLETED quests.
const MaxActiveQuests = 4

// Quest is one challenge on the quest board.
type Quest struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Type       QuestType   `json:"type"`
	Rarity     QuestRarity `json:"rarity"`
	Target     int         `json:"target"`
	Progress   int         `json:"progress"`
	Status     QuestStatus `json:"status"`
	AcceptedAt time.Time   `json:"accepted_at"`
}

// Active reports whether the quest occupies a board slot.
func (q Quest) Active() bool {
	return q.Status == QuestAccepted || q.Status == QuestCompleted
}

// ProgressPct returns completion percentage (0–100).
func (q Quest) ProgressPct() float64 {
	if q.Target <= 0 {
		return 100.0
	}
	pct := float64(q.Progress) / float64(q.Target) * 100.0
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}

// QuestTemplate defines the pool the daily quest board is drawn from.
type QuestTemplate struct {
	Slug   string      `json:"slug"`
	Title  string      `json:"title"`
	Type   QuestType   `json:"type"`
	Rarity QuestRarity `json:"rarity"`
	Target int         `json:"target"`
}
