// Package quests runs the quest board and the achievement checker: daily
// deterministic offers, the accept/complete/claim lifecycle, per-log
// progress evaluation and one-way achievement unlocks.
package quests

import (
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Advance applies one committed log to a quest's progress counter using its
// type-specific rule. Progress only moves while ACCEPTED; reaching the
// target completes exactly once. For the low-* streak quests a single
// disqualifying tag resets progress to zero instead of merely not counting.
func Advance(q *domain.Quest, e *domain.LogEntry) (changed, completed bool) {
	if q.Status != domain.QuestAccepted {
		return false, false
	}

	before := q.Progress
	switch q.Type {
	case domain.QuestCount:
		if e.Kind == domain.LogFood {
			q.Progress++
		}
	case domain.QuestProtein:
		if e.Kind == domain.LogFood {
			q.Progress += int(e.Macros.Protein)
		}
	case domain.QuestVegetable:
		if e.Kind == domain.LogFood && (e.Tags.Has(domain.TagVegetable) || e.Category == "vegetable") {
			q.Progress++
		}
	case domain.QuestWater:
		if e.Kind == domain.LogWater {
			q.Progress += int(e.AmountML)
		}
	case domain.QuestCalorieCeiling:
		if e.Kind == domain.LogFood {
			q.Progress += int(e.Macros.Calories)
		}
	case domain.QuestLowCarb:
		advanceStreak(q, e, domain.TagHighCarb)
	case domain.QuestLowFat:
		advanceStreak(q, e, domain.TagHighFat)
	case domain.QuestLowSugar:
		advanceStreak(q, e, domain.TagHighSugar)
	case domain.QuestCustom:
		// manual progress only
	}

	if q.Progress < 0 {
		q.Progress = 0
	}
	if q.Progress >= q.Target {
		q.Progress = q.Target
		q.Status = domain.QuestCompleted
		return true, true
	}
	return q.Progress != before, false
}

func advanceStreak(q *domain.Quest, e *domain.LogEntry, disqualifying domain.Tag) {
	if e.Kind != domain.LogFood {
		return
	}
	if e.Tags.Has(disqualifying) {
		q.Progress = 0
		return
	}
	q.Progress++
}
