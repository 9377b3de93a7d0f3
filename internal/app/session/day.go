package session

import (
	"log"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/app/almanac"
	"github.com/nutriquest-app/nutriquest/internal/app/progression"
	"github.com/nutriquest-app/nutriquest/internal/app/stage"
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/metrics"
)

// StageNow reports today's derived stage, the monster guarding it and the
// day's environment effect.
func (s *Session) StageNow() (domain.StageInfo, domain.Monster, domain.Environment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero == nil {
		return domain.StageInfo{}, domain.Monster{}, domain.Environment{}, domain.ErrProfileMissing
	}
	s.advanceDay()

	date := s.today()
	info := s.stageAt(date)
	return info, s.monsterFor(date, info), s.alm.Environment(date), nil
}

// stageAt recomputes the stage from the day's committed damage. Pure
// derivation — deleting a log simply shrinks the cumulative total.
func (s *Session) stageAt(date string) domain.StageInfo {
	var cumulative int64
	logs, err := s.db.ListLogsByDate(date)
	if err != nil {
		log.Printf("[session] list logs: %v", err)
	}
	for _, e := range logs {
		cumulative += int64(e.Outcome.Damage)
	}
	return stage.Compute(cumulative, s.dailyTarget())
}

// monsterFor picks the encounter for a stage: a rotating minion, or the
// daily boss chosen from the pool countering yesterday's macro excess.
// An overloaded boss shows its enraged face.
func (s *Session) monsterFor(date string, info domain.StageInfo) domain.Monster {
	if info.Kind == domain.StageMinion {
		return s.alm.Minion(date, info.Index)
	}
	m := s.alm.Boss(date, s.excessFor(yesterdayOf(date)))
	if info.Overloaded && m.EnragedName != "" {
		m.Name = m.EnragedName
	}
	return m
}

// excessFor classifies a date's dominant macro overshoot.
func (s *Session) excessFor(date string) almanac.MacroExcess {
	logs, err := s.db.ListLogsByDate(date)
	if err != nil {
		log.Printf("[session] list logs: %v", err)
		return almanac.ExcessNone
	}
	var carbs, fat float64
	for _, e := range logs {
		if e.Kind == domain.LogFood {
			carbs += e.Macros.Carbs
			fat += e.Macros.Fat
		}
	}
	return almanac.DominantExcess(carbs, fat, s.dailyTarget())
}

// CheckAndAdvanceDay runs the daily settlement if the calendar date rolled
// over since the last tick. The host calls this on resume/foreground; the
// logging operations call it implicitly. Returns the settlement report, or
// nil when the day had not changed.
func (s *Session) CheckAndAdvanceDay() (*progression.SettlementReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return nil, domain.ErrProfileMissing
	}
	return s.advanceDay(), nil
}

// advanceDay settles the previous day exactly once per rollover.
// Callers hold the session lock.
func (s *Session) advanceDay() *progression.SettlementReport {
	today := s.today()
	if s.hero.LastLoginDate == today {
		return nil
	}

	yday := yesterdayOf(today)
	count, err := s.db.CountLogsByDate(yday)
	if err != nil {
		log.Printf("[session] count logs: %v", err)
	}

	// The reckoning reads calories eaten, not multiplier-scaled damage.
	var calories float64
	for _, e := range s.logsFor(yday) {
		if e.Kind == domain.LogFood {
			calories += e.Macros.Calories
		}
	}

	stats := s.derived()
	monster := s.alm.Boss(yday, s.excessFor(yday))
	rep := progression.Settle(s.hero, yday, count, calories, s.dailyTarget(), monster, stats.MaxHP, stats.ExpRate)
	s.hero.LastLoginDate = today
	s.saveHero()

	switch {
	case !rep.HadLogs:
		metrics.Settlements.WithLabelValues("empty").Inc()
		if rep.FreezeUsed {
			s.emit(EventStreakSaved, "A streak freeze kept your %d-day streak alive", rep.StreakAfter)
		}
	case rep.Victory:
		metrics.Settlements.WithLabelValues("victory").Inc()
		s.recordGold("earn", rep.GoldGranted, "", "settlement victory: "+yday)
		s.emit(EventSettlement, "Victory over %s %s! +%d exp, +%d gold",
			monster.Icon, monster.Name, rep.ExpGranted, rep.GoldGranted)
	case rep.Collapsed:
		metrics.Settlements.WithLabelValues("collapse").Inc()
		s.recordGold("earn", rep.GoldGranted, "", "settlement collapse: "+yday)
		s.emit(EventSettlement, "You barely scratched %s — eat to your target!", monster.Name)
	default:
		metrics.Settlements.WithLabelValues("defeat").Inc()
		s.recordGold("earn", rep.GoldGranted, "", "settlement defeat: "+yday)
		s.emit(EventSettlement, "%s %s withstood the day. +%d exp",
			monster.Icon, monster.Name, rep.ExpGranted)
	}
	if rep.LevelsUp > 0 {
		metrics.LevelUps.Add(float64(rep.LevelsUp))
		s.emit(EventLevelUp, "Level up! You are now level %d", s.hero.Level)
	}
	return &rep
}

func (s *Session) logsFor(date string) []domain.LogEntry {
	logs, err := s.db.ListLogsByDate(date)
	if err != nil {
		log.Printf("[session] list logs: %v", err)
		return nil
	}
	return logs
}

func yesterdayOf(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}
