package progression

import (
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Settlement outcome bands on the calories/target ratio.
const (
	victoryLow    = 0.9
	victoryHigh   = 1.1
	collapseBelow = 0.6
)

// SettlementReport records what the end-of-day reckoning did, both for
// notifications and for the daily history.
type SettlementReport struct {
	Date        string         `json:"date"`
	HadLogs     bool           `json:"had_logs"`
	Victory     bool           `json:"victory"`
	Collapsed   bool           `json:"collapsed"`
	Ratio       float64        `json:"ratio"`
	ExpGranted  int64          `json:"exp_granted"`
	GoldGranted int64          `json:"gold_granted"`
	Healed      int            `json:"healed"`
	StreakAfter int            `json:"streak_after"`
	FreezeUsed  bool           `json:"freeze_used"`
	LevelsUp    int            `json:"levels_up"`
	Monster     domain.Monster `json:"monster"`
}

// Settle closes out one finished day. A day with no logs breaks the streak
// unless a streak freeze is consumed; a logged day extends the streak and
// pays out by how close total calories consumed landed to the daily target.
// Battle multipliers never enter here: they scale stage damage, not the
// reckoning of what was eaten. Landing inside the victory band is a win,
// far under it a collapse. The shield never carries across midnight.
func Settle(h *domain.Hero, date string, logCount int, calories float64, target int, monster domain.Monster, maxHP int, rate float64) SettlementReport {
	rep := SettlementReport{Date: date, Monster: monster}
	h.Shield = 0

	if logCount == 0 {
		if h.ConsumeItem(domain.ItemStreakFreeze) {
			rep.FreezeUsed = true
		} else {
			h.LoginStreak = 1
		}
		rep.StreakAfter = h.LoginStreak
		return rep
	}

	rep.HadLogs = true
	h.LoginStreak++

	if target > 0 {
		rep.Ratio = calories / float64(target)
	}
	rep.Victory = rep.Ratio >= victoryLow && rep.Ratio <= victoryHigh
	rep.Collapsed = rep.Ratio < collapseBelow

	weight := int64(h.LoginStreak)
	if weight > 10 {
		weight = 10
	}
	var exp, gold int64
	if rep.Victory {
		exp = 80 + 8*weight
		gold = 30 + 2*weight
		rep.Healed = Heal(h, maxHP/4, maxHP)
	} else {
		exp = 20
		gold = 5
	}

	res := AddExperience(h, float64(exp), rate, maxHP)
	rep.ExpGranted = res.Granted
	rep.LevelsUp = res.LevelsGained
	rep.Healed += res.Healed
	h.Gold += gold
	rep.GoldGranted = gold
	rep.StreakAfter = h.LoginStreak
	return rep
}
