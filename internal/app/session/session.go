// Package session owns the one live engine instance: the hero, the quest
// board, the almanac and the store, wired together behind a single mutex.
// Every mutation of shared state goes through a Session method and runs to
// completion before the next one starts — one logical tick at a time, the
// way a UI event loop would drive it.
package session

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/app/almanac"
	"github.com/nutriquest-app/nutriquest/internal/app/formula"
	"github.com/nutriquest-app/nutriquest/internal/app/progression"
	"github.com/nutriquest-app/nutriquest/internal/app/quests"
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
	"github.com/nutriquest-app/nutriquest/internal/infra/metrics"
	"github.com/nutriquest-app/nutriquest/internal/infra/sqlite"
)

// Event is a fire-and-forget user-facing notification. Informational only;
// dropping every event changes nothing about engine state.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Event types emitted by the engine.
const (
	EventLevelUp     = "level_up"
	EventStageClear  = "stage_clear"
	EventBossDown    = "boss_down"
	EventRetaliation = "retaliation"
	EventDodge       = "dodge"
	EventQuestDone   = "quest_done"
	EventAchievement = "achievement"
	EventSettlement  = "settlement"
	EventStreakSaved = "streak_saved"
)

// Counter keys for lifetime aggregates feeding achievement predicates.
const (
	ctrFoodLogs      = "food_logs"
	ctrExerciseLogs  = "exercise_logs"
	ctrWaterML       = "water_ml"
	ctrProteinG      = "protein_g"
	ctrCaloriesKcal  = "calories_kcal"
	ctrBossesCleared = "bosses_cleared"
	ctrMaxCombo      = "max_combo"
	ctrQuestsClaimed = "quests_claimed"
)

// Session is the engine facade. One per process; all methods are safe for
// concurrent use but execute strictly one at a time.
type Session struct {
	mu      sync.Mutex
	db      *sqlite.DB
	alm     *almanac.Almanac
	board   *quests.Board
	checker *quests.Checker
	profile domain.Profile

	hero *domain.Hero
	rng  *rand.Rand
	now  func() time.Time
	sink func(Event)
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand overrides the dodge-roll source (tests).
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSink sets the notification sink.
func WithSink(sink func(Event)) Option {
	return func(s *Session) { s.sink = sink }
}

// New builds a Session over an opened store. The hero, if one exists, is
// loaded into memory; in-memory state is the source of truth from then on
// and the store is its durable mirror.
func New(db *sqlite.DB, profile domain.Profile, opts ...Option) (*Session, error) {
	s := &Session{
		db:      db,
		alm:     almanac.New(catalog.Bosses, catalog.Minions, catalog.Environments),
		board:   quests.NewBoard(db),
		checker: quests.NewChecker(db),
		profile: profile,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		sink:    func(Event) {},
	}
	for _, o := range opts {
		o(s)
	}

	hero, err := db.LoadHero()
	if err != nil {
		return nil, fmt.Errorf("load hero: %w", err)
	}
	s.hero = hero
	if hero != nil {
		s.publishGauges()
	}
	return s, nil
}

// Onboard creates the hero. Fails if one already exists.
func (s *Session) Onboard(race domain.Race) (*domain.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hero != nil {
		return nil, fmt.Errorf("hero already exists")
	}
	if !race.IsValid() {
		return nil, domain.ErrUnknownRace
	}

	h := domain.NewHero(race)
	h.LastLoginDate = s.today()
	if err := s.db.SaveHero(h); err != nil {
		return nil, fmt.Errorf("save hero: %w", err)
	}
	s.hero = h
	s.publishGauges()
	log.Printf("[session] hero created: race=%s", race)
	return snapshot(h), nil
}

// Hero returns a copy of the current hero state.
func (s *Session) Hero() (*domain.Hero, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return nil, domain.ErrProfileMissing
	}
	return snapshot(s.hero), nil
}

// Profile returns the onboarding body metrics.
func (s *Session) Profile() domain.Profile {
	return s.profile
}

// BMI of the configured profile.
func (s *Session) BMI() float64 {
	return formula.BMI(s.profile.WeightKg, s.profile.HeightCm)
}

// DailyTarget is the hero's energy target: Mifflin-St Jeor from the
// profile plus the BMR bonus of every equipped achievement reward.
func (s *Session) DailyTarget() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailyTarget()
}

func (s *Session) dailyTarget() int {
	target := formula.BMR(s.profile.WeightKg, s.profile.HeightCm, s.profile.Age,
		s.profile.Gender, s.profile.Activity, s.profile.Goal)
	for _, eq := range s.equippedGear() {
		target += eq.BMRBonus
	}
	return target
}

// Derived recomputes the hero's combat stats.
func (s *Session) Derived() (progression.Derived, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return progression.Derived{}, domain.ErrProfileMissing
	}
	return s.derived(), nil
}

func (s *Session) derived() progression.Derived {
	return progression.Derive(s.hero, s.equippedGear())
}

func (s *Session) equippedGear() []domain.Equipment {
	gear, err := s.checker.EquippedGear()
	if err != nil {
		log.Printf("[session] equipped gear: %v", err)
		return nil
	}
	return gear
}

func (s *Session) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Session) emit(typ, format string, args ...any) {
	s.sink(Event{Type: typ, Message: fmt.Sprintf(format, args...)})
}

// saveHero mirrors the in-memory hero to the store. Persistence failures
// are reported but never roll back the in-memory mutation.
func (s *Session) saveHero() {
	if err := s.db.SaveHero(s.hero); err != nil {
		log.Printf("[session] save hero: %v", err)
	}
	s.publishGauges()
}

func (s *Session) publishGauges() {
	metrics.HeroLevel.Set(float64(s.hero.Level))
	metrics.HeroHP.Set(float64(s.hero.CurrentHP))
	metrics.GoldBalance.Set(float64(s.hero.Gold))
	metrics.ComboCurrent.Set(float64(s.hero.ComboCount))
}

func (s *Session) recordGold(typ string, amount int64, logID, desc string) {
	_, err := s.db.InsertGoldEntry(sqlite.GoldEntry{
		Timestamp:   s.now(),
		Type:        typ,
		Amount:      amount,
		LogID:       logID,
		Description: desc,
		Balance:     s.hero.Gold,
	})
	if err != nil {
		log.Printf("[session] gold ledger: %v", err)
	}
}

// heroStats snapshots the aggregates achievement predicates read.
func (s *Session) heroStats() domain.HeroStats {
	get := func(key string) float64 {
		v, err := s.db.GetCounter(key)
		if err != nil {
			log.Printf("[session] counter %s: %v", key, err)
			return 0
		}
		return v
	}
	return domain.HeroStats{
		Level:           s.hero.Level,
		LoginStreak:     s.hero.LoginStreak,
		Gold:            s.hero.Gold,
		TotalFoodLogs:   int64(get(ctrFoodLogs)),
		TotalExercise:   int64(get(ctrExerciseLogs)),
		TotalWaterML:    get(ctrWaterML),
		LifetimeProtein: get(ctrProteinG),
		LifetimeCal:     get(ctrCaloriesKcal),
		BossesCleared:   int64(get(ctrBossesCleared)),
		MaxCombo:        int(get(ctrMaxCombo)),
		QuestsClaimed:   int64(get(ctrQuestsClaimed)),
	}
}

// checkAchievements runs the predicates and emits unlock events.
func (s *Session) checkAchievements() {
	unlocked, err := s.checker.Check(s.heroStats(), s.now())
	if err != nil {
		log.Printf("[session] achievements: %v", err)
		return
	}
	for _, def := range unlocked {
		metrics.AchievementsUnlocked.Inc()
		s.emit(EventAchievement, "%s Achievement unlocked: %s", def.Icon, def.Name)
	}
}

func snapshot(h *domain.Hero) *domain.Hero {
	c := *h
	c.Inventory = map[string]int{}
	for k, v := range h.Inventory {
		c.Inventory[k] = v
	}
	c.LearnedSkills = map[string]int{}
	for k, v := range h.LearnedSkills {
		c.LearnedSkills[k] = v
	}
	return &c
}
