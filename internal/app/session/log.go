package session

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/nutriquest-app/nutriquest/internal/app/battle"
	"github.com/nutriquest-app/nutriquest/internal/app/formula"
	"github.com/nutriquest-app/nutriquest/internal/app/progression"
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
	"github.com/nutriquest-app/nutriquest/internal/infra/metrics"
)

// FoodInput is a resolved food item ready to log. The catalog (or the host
// app's food database) resolves names to macros before the engine sees it.
type FoodInput struct {
	Name      string        `json:"name"`
	Icon      string        `json:"icon"`
	Category  string        `json:"category"`
	Macros    domain.Macros `json:"macros"`
	Grams     float64       `json:"grams"`
	Clean     bool          `json:"clean"`
	Preset    bool          `json:"preset"`
	Composite bool          `json:"composite"`
}

// Exercise experience and healing rates.
const (
	exerciseExpBase  = 20.0
	exerciseHealRate = 2 // HP per minute
)

// LogFood commits a food log and runs one full battle resolution against
// it. The returned entry carries the applied outcome; everything on it can
// be reversed by DeleteLog.
func (s *Session) LogFood(in FoodInput) (*domain.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero == nil {
		return nil, domain.ErrProfileMissing
	}
	if in.Name == "" {
		return nil, domain.ErrMissingName
	}
	if in.Macros.Calories <= 0 || math.IsNaN(in.Macros.Calories) {
		return nil, domain.ErrInvalidAmount
	}
	s.advanceDay()

	e := &domain.LogEntry{
		ID:          uuid.NewString(),
		Date:        s.today(),
		Kind:        domain.LogFood,
		Name:        in.Name,
		Icon:        in.Icon,
		Category:    in.Category,
		Macros:      in.Macros,
		Grams:       in.Grams,
		IsPreset:    in.Preset,
		IsComposite: in.Composite,
		CreatedAt:   s.now(),
	}
	if in.Clean {
		e.Tags = e.Tags.Add(domain.TagClean)
	}
	battle.InferTags(e)

	info := s.stageAt(e.Date)
	monster := s.monsterFor(e.Date, info)
	stats := s.derived()

	var skill *domain.SkillNode
	if s.hero.ActiveSkill != "" {
		skill = catalog.SkillByID(s.hero.ActiveSkill)
	}

	res := battle.Resolve(s.hero, battle.Input{
		Entry:     e,
		Stage:     info,
		Monster:   monster,
		Env:       s.alm.Environment(e.Date),
		Stats:     stats,
		Skill:     skill,
		Lifesteal: s.lifesteal(),
	}, s.rng)

	s.hero.ProteinPool += formula.Sanitize(in.Macros.Protein)
	s.hero.CaloriePool += formula.Sanitize(in.Macros.Calories)

	if err := s.db.UpsertLog(*e); err != nil {
		return nil, fmt.Errorf("persist log: %w", err)
	}

	s.bumpCounter(ctrFoodLogs, 1)
	s.bumpCounter(ctrProteinG, formula.Sanitize(in.Macros.Protein))
	s.bumpCounter(ctrCaloriesKcal, formula.Sanitize(in.Macros.Calories))
	s.recordMaxCombo()

	metrics.BattlesResolved.WithLabelValues(string(domain.LogFood)).Inc()
	metrics.DamageDealt.Add(float64(res.Outcome.Damage))
	if res.Outcome.Resisted {
		metrics.HitsResisted.Inc()
	}
	if res.Outcome.DamageTaken > 0 {
		metrics.RetaliationsTaken.Inc()
		s.emit(EventRetaliation, "%s strikes back for %d damage!", monster.Name, res.Outcome.DamageTaken)
	}
	if res.Outcome.Dodged {
		s.emit(EventDodge, "You slip past %s's retaliation", monster.Name)
	}
	if res.LevelsUp > 0 {
		metrics.LevelUps.Add(float64(res.LevelsUp))
		s.emit(EventLevelUp, "Level up! You are now level %d", s.hero.Level)
	}
	if res.BossDown {
		s.bumpCounter(ctrBossesCleared, 1)
		s.emit(EventBossDown, "%s %s is defeated!", monster.Icon, monster.Name)
	} else if res.StageCleared {
		s.emit(EventStageClear, "%s %s falls — next stage ahead", monster.Icon, monster.Name)
	}
	if res.Outcome.GoldGranted > 0 {
		s.recordGold("earn", res.Outcome.GoldGranted, e.ID, "stage clear: "+monster.Name)
	}

	s.applyQuests(e)
	s.checkAchievements()
	s.saveHero()
	return e, nil
}

// LogExercise commits an exercise log: no battle, but it heals the hero
// and grants a small experience boost, and the minutes feed agility.
func (s *Session) LogExercise(name, icon, category string, durationMin float64) (*domain.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero == nil {
		return nil, domain.ErrProfileMissing
	}
	if name == "" {
		return nil, domain.ErrMissingName
	}
	if durationMin <= 0 || math.IsNaN(durationMin) {
		return nil, domain.ErrInvalidAmount
	}
	s.advanceDay()

	e := &domain.LogEntry{
		ID:          uuid.NewString(),
		Date:        s.today(),
		Kind:        domain.LogExercise,
		Name:        name,
		Icon:        icon,
		Category:    category,
		DurationMin: durationMin,
		CreatedAt:   s.now(),
	}

	stats := s.derived()
	e.Outcome.HealGranted = progression.Heal(s.hero, formula.SanitizeInt(durationMin*exerciseHealRate), stats.MaxHP)
	expRes := progression.AddExperience(s.hero, exerciseExpBase, stats.ExpRate, stats.MaxHP)
	e.Outcome.ExpGranted = expRes.Granted
	e.Outcome.HealGranted += expRes.Healed

	s.hero.ExercisePool += formula.Sanitize(durationMin)

	if err := s.db.UpsertLog(*e); err != nil {
		return nil, fmt.Errorf("persist log: %w", err)
	}
	s.bumpCounter(ctrExerciseLogs, 1)

	if expRes.LevelsGained > 0 {
		metrics.LevelUps.Add(float64(expRes.LevelsGained))
		s.emit(EventLevelUp, "Level up! You are now level %d", s.hero.Level)
	}

	s.applyQuests(e)
	s.checkAchievements()
	s.saveHero()
	return e, nil
}

// LogWater commits a hydration log. Only quests and lifetime stats care.
func (s *Session) LogWater(amountML float64) (*domain.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero == nil {
		return nil, domain.ErrProfileMissing
	}
	if amountML <= 0 || math.IsNaN(amountML) {
		return nil, domain.ErrInvalidAmount
	}
	s.advanceDay()

	e := &domain.LogEntry{
		ID:        uuid.NewString(),
		Date:      s.today(),
		Kind:      domain.LogWater,
		Name:      "water",
		Icon:      "💧",
		AmountML:  amountML,
		CreatedAt: s.now(),
	}
	if err := s.db.UpsertLog(*e); err != nil {
		return nil, fmt.Errorf("persist log: %w", err)
	}
	s.bumpCounter(ctrWaterML, amountML)

	s.applyQuests(e)
	s.checkAchievements()
	s.saveHero()
	return e, nil
}

// LogPreset resolves a catalog preset by name and logs it.
func (s *Session) LogPreset(name string) (*domain.LogEntry, error) {
	p := catalog.PresetByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	if p.Kind == domain.LogExercise {
		return s.LogExercise(p.Name, p.Icon, p.Category, p.Duration)
	}
	return s.LogFood(FoodInput{
		Name: p.Name, Icon: p.Icon, Category: p.Category,
		Macros: p.Macros, Grams: p.Grams, Clean: p.Clean, Preset: true,
	})
}

// DeleteLog removes a committed log and exactly reverses the rewards it
// recorded: experience (de-leveling if needed), gold, healing received and
// retaliation taken. Quest progress already earned from the entry stays —
// the board is forward-only.
func (s *Session) DeleteLog(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero == nil {
		return domain.ErrProfileMissing
	}
	e, err := s.db.GetLog(id)
	if err != nil {
		return err
	}

	out := e.Outcome
	progression.RemoveExperience(s.hero, out.ExpGranted)

	if out.GoldGranted > 0 {
		s.hero.Gold -= out.GoldGranted
		if s.hero.Gold < 0 {
			s.hero.Gold = 0
		}
		s.recordGold("reverse", -out.GoldGranted, e.ID, "log deleted: "+e.Name)
	}

	maxHP := s.derived().MaxHP
	s.hero.CurrentHP -= out.HealGranted
	if s.hero.CurrentHP < 0 {
		s.hero.CurrentHP = 0
	}
	hpTaken := out.DamageTaken - out.ShieldTaken
	s.hero.CurrentHP += hpTaken
	if s.hero.CurrentHP > maxHP {
		s.hero.CurrentHP = maxHP
	}
	s.hero.Shield += out.ShieldTaken
	if s.hero.Shield > maxHP {
		s.hero.Shield = maxHP
	}

	switch e.Kind {
	case domain.LogFood:
		s.hero.ProteinPool = poolFloor(s.hero.ProteinPool - e.Macros.Protein)
		s.hero.CaloriePool = poolFloor(s.hero.CaloriePool - e.Macros.Calories)
		s.bumpCounter(ctrFoodLogs, -1)
		s.bumpCounter(ctrProteinG, -formula.Sanitize(e.Macros.Protein))
		s.bumpCounter(ctrCaloriesKcal, -formula.Sanitize(e.Macros.Calories))
	case domain.LogExercise:
		s.hero.ExercisePool = poolFloor(s.hero.ExercisePool - e.DurationMin)
		s.bumpCounter(ctrExerciseLogs, -1)
	case domain.LogWater:
		s.bumpCounter(ctrWaterML, -formula.Sanitize(e.AmountML))
	}

	if err := s.db.DeleteLog(id); err != nil {
		return err
	}
	s.saveHero()
	return nil
}

// Logs lists a day's entries, most recent first.
func (s *Session) Logs(date string) ([]domain.LogEntry, error) {
	return s.db.ListLogsByDate(date)
}

func (s *Session) lifesteal() float64 {
	var frac float64
	for id, lvl := range s.hero.LearnedSkills {
		if node := catalog.SkillByID(id); node != nil && node.Effect == domain.EffectLifesteal {
			frac += node.ValuePerLevel * float64(lvl)
		}
	}
	return frac
}

func (s *Session) bumpCounter(key string, delta float64) {
	if err := s.db.AddCounter(key, delta); err != nil {
		log.Printf("[session] counter %s: %v", key, err)
	}
}

func (s *Session) recordMaxCombo() {
	cur, err := s.db.GetCounter(ctrMaxCombo)
	if err != nil {
		return
	}
	if float64(s.hero.ComboCount) > cur {
		s.bumpCounter(ctrMaxCombo, float64(s.hero.ComboCount)-cur)
	}
}

func (s *Session) applyQuests(e *domain.LogEntry) {
	done, err := s.board.ApplyLog(e)
	if err != nil {
		log.Printf("[session] quests: %v", err)
		return
	}
	for _, q := range done {
		metrics.QuestsCompleted.WithLabelValues(string(q.Type)).Inc()
		s.emit(EventQuestDone, "Quest complete: %s — claim your reward", q.Title)
	}
}

func poolFloor(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
