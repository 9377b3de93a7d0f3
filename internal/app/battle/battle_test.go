package battle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/app/progression"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

func foodEntry(name string, m domain.Macros, grams float64) *domain.LogEntry {
	return &domain.LogEntry{
		ID:        "t-" + name,
		Date:      "2026-08-31",
		Kind:      domain.LogFood,
		Name:      name,
		Macros:    m,
		Grams:     grams,
		CreatedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func baseStats() progression.Derived {
	return progression.Derived{MaxHP: 150, DodgePct: 0, ExpRate: 1.0}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// ─── Tag Inference ──────────────────────────────────────────────────────────

func TestInferTags_AbsoluteThresholds(t *testing.T) {
	e := foodEntry("rice bowl", domain.Macros{Calories: 300, Carbs: 35, Protein: 21, Fat: 22, Sugar: 16, SodiumMg: 900}, 200)
	InferTags(e)

	for _, want := range []domain.Tag{
		domain.TagHighCarb, domain.TagHighProtein, domain.TagHighFat,
		domain.TagHighSugar, domain.TagHighSodium,
	} {
		if !e.Tags.Has(want) {
			t.Errorf("missing tag %s", want)
		}
	}
}

func TestInferTags_LargeMealUsesDensity(t *testing.T) {
	// 330g drink: 35g sugar is only ~10.6g/100g — dense enough for
	// high-sugar, but its 35g of carbs miss the 20g/100g carb density.
	e := foodEntry("sparkling drink", domain.Macros{Calories: 139, Carbs: 35, Sugar: 35}, 330)
	InferTags(e)
	if !e.Tags.Has(domain.TagHighSugar) {
		t.Error("large-meal sugar density should tag high-sugar")
	}
	if e.Tags.Has(domain.TagHighCarb) {
		t.Error("large meal must not be tagged high-carb on absolute grams")
	}
}

func TestInferTags_SmallItemDensity(t *testing.T) {
	// 50g biscuit: 15g carbs is under the 30g absolute line but 30g/100g
	// dense — well past the 20g/100g carb threshold.
	e := foodEntry("biscuit", domain.Macros{Calories: 210, Carbs: 15}, 50)
	InferTags(e)
	if !e.Tags.Has(domain.TagHighCarb) {
		t.Error("dense small item should tag high-carb")
	}

	// Without a portion weight only the absolute thresholds apply.
	unweighed := foodEntry("biscuit (no weight)", domain.Macros{Calories: 210, Carbs: 15}, 0)
	InferTags(unweighed)
	if unweighed.Tags.Has(domain.TagHighCarb) {
		t.Error("unweighed item must not be tagged on density")
	}
}

func TestInferTags_SugarKeyword(t *testing.T) {
	e := foodEntry("Chocolate Cake Slice", domain.Macros{Calories: 200, Sugar: 5}, 80)
	InferTags(e)
	if !e.Tags.Has(domain.TagHighSugar) {
		t.Error("sugar keyword in name should tag high-sugar")
	}
}

func TestInferTags_BalancedSynthesis(t *testing.T) {
	e := foodEntry("meal prep box", domain.Macros{Calories: 450, Carbs: 40, Protein: 30}, 200)
	e.Tags = domain.TagSet{domain.TagClean}
	InferTags(e)
	if !e.Tags.Has(domain.TagBalanced) {
		t.Error("high-carb + high-protein + clean should synthesize balanced")
	}
}

func TestInferTags_VegetableCategory(t *testing.T) {
	e := foodEntry("broccoli", domain.Macros{Calories: 51}, 150)
	e.Category = "vegetable"
	InferTags(e)
	if !e.Tags.Has(domain.TagVegetable) {
		t.Error("vegetable category should tag vegetable")
	}
}

// ─── Combo ──────────────────────────────────────────────────────────────────

func TestAdvanceCombo(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	good := domain.TagSet{domain.TagClean}
	bad := domain.TagSet{domain.TagHighSugar}

	if got := AdvanceCombo(h, good, now); got != 1 {
		t.Fatalf("first good log combo = %d, want 1", got)
	}
	if got := AdvanceCombo(h, good, now.Add(time.Hour)); got != 2 {
		t.Fatalf("good within window combo = %d, want 2", got)
	}
	if got := AdvanceCombo(h, bad, now.Add(2*time.Hour)); got != 0 {
		t.Fatalf("bad tag combo = %d, want hard reset to 0", got)
	}
	if got := AdvanceCombo(h, good, now.Add(10*time.Hour)); got != 1 {
		t.Fatalf("good outside window combo = %d, want 1", got)
	}
	if got := AdvanceCombo(h, nil, now.Add(20*time.Hour)); got != 0 {
		t.Fatalf("neutral outside window combo = %d, want lapse to 0", got)
	}
}

func TestAdvanceCombo_Cap(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	good := domain.TagSet{domain.TagHighProtein}
	now := time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		AdvanceCombo(h, good, now.Add(time.Duration(i)*time.Minute))
	}
	if h.ComboCount != MaxCombo {
		t.Fatalf("combo = %d, want capped at %d", h.ComboCount, MaxCombo)
	}
}

func TestComboMultiplier(t *testing.T) {
	if got := ComboMultiplier(0); got != 1.0 {
		t.Fatalf("ComboMultiplier(0) = %v", got)
	}
	if got := ComboMultiplier(5); got != 1.4 {
		t.Fatalf("ComboMultiplier(5) = %v, want 1.4", got)
	}
}

// ─── Resolution ─────────────────────────────────────────────────────────────

func TestResolve_ResistWithRetaliation(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	e := foodEntry("noodles", domain.Macros{Calories: 300, Carbs: 35}, 200)
	InferTags(e)

	res := Resolve(h, Input{
		Entry:   e,
		Stage:   domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Monster: domain.Monster{ID: "noodle-wyrm", Weakness: domain.WeaknessLowCarb},
		Env:     domain.Environment{Multiplier: 1.0},
		Stats:   baseStats(),
	}, testRNG())

	if !res.Outcome.Resisted {
		t.Fatal("high-carb vs low-carb weakness must resist")
	}
	if res.Outcome.Multiplier != 0.3 {
		t.Fatalf("multiplier = %v, want 0.3", res.Outcome.Multiplier)
	}
	if res.Outcome.Damage != 90 {
		t.Fatalf("damage = %d, want floor(300×0.3)=90", res.Outcome.Damage)
	}
	// Dodge chance 0, combo 0: retaliation of 30 lands on bare HP.
	if res.Outcome.Dodged {
		t.Fatal("retaliation should not be dodged")
	}
	if res.Outcome.DamageTaken != 30 || h.CurrentHP != 70 {
		t.Fatalf("retaliation: taken=%d hp=%d, want 30/70", res.Outcome.DamageTaken, h.CurrentHP)
	}
}

func TestResolve_FavoredBonus(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	e := foodEntry("chicken breast", domain.Macros{Calories: 248, Protein: 46}, 150)
	InferTags(e)

	res := Resolve(h, Input{
		Entry:   e,
		Stage:   domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Monster: domain.Monster{ID: "couch-troll", Weakness: domain.WeaknessHighProtein},
		Env:     domain.Environment{Multiplier: 1.0},
		Stats:   baseStats(),
	}, testRNG())

	if res.Outcome.Resisted {
		t.Fatal("protein vs high-protein weakness must not resist")
	}
	// 1.5 weakness × 1.0 combo (first good log) = 1.5.
	if res.Outcome.Damage != 372 {
		t.Fatalf("damage = %d, want floor(248×1.5)=372", res.Outcome.Damage)
	}
	if res.Outcome.HealGranted == 0 {
		t.Fatal("normal hit should grant the passive heal")
	}
	if res.Outcome.ExpGranted != 30 {
		t.Fatalf("exp = %d, want base 30", res.Outcome.ExpGranted)
	}
}

func TestResolve_CleanCompositeSoftened(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	e := foodEntry("meal prep box", domain.Macros{Calories: 400, Carbs: 45}, 200)
	e.IsComposite = true
	e.Tags = domain.TagSet{domain.TagClean}
	InferTags(e)

	res := Resolve(h, Input{
		Entry:   e,
		Stage:   domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Monster: domain.Monster{Weakness: domain.WeaknessLowCarb},
		Env:     domain.Environment{Multiplier: 1.0},
		Stats:   baseStats(),
	}, testRNG())

	if !res.Outcome.Resisted {
		t.Fatal("softened hit is still marked resisted")
	}
	if res.Outcome.Multiplier != 0.8 {
		t.Fatalf("multiplier = %v, want relaxed 0.8", res.Outcome.Multiplier)
	}
	if res.Outcome.DamageTaken != 0 {
		t.Fatal("clean composite resist must not retaliate")
	}
}

func TestResolve_ComboGuaranteesDodge(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	h.ComboCount = 3
	h.ComboLastAt = time.Date(2026, 8, 31, 11, 30, 0, 0, time.UTC)
	e := foodEntry("fried noodles", domain.Macros{Calories: 500, Carbs: 60}, 200)
	InferTags(e)

	res := Resolve(h, Input{
		Entry:   e,
		Stage:   domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Monster: domain.Monster{Weakness: domain.WeaknessLowCarb},
		Env:     domain.Environment{Multiplier: 1.0},
		Stats:   baseStats(),
	}, testRNG())

	if !res.Outcome.Dodged {
		t.Fatal("combo above 1 guarantees the dodge")
	}
	if res.Outcome.DamageTaken != 0 {
		t.Fatal("dodged retaliation must not deal damage")
	}
}

func TestResolve_OverloadedDoublesRetaliation(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	h.Shield = 10
	e := foodEntry("late snack", domain.Macros{Calories: 200}, 100)
	InferTags(e)

	res := Resolve(h, Input{
		Entry:   e,
		Stage:   domain.StageInfo{Kind: domain.StageBoss, RemainingHP: 0, Overloaded: true},
		Monster: domain.Monster{},
		Env:     domain.Environment{Multiplier: 1.0},
		Stats:   progression.Derived{MaxHP: 150, DodgePct: 0, Block: 5, ExpRate: 1.0},
	}, testRNG())

	// 30×2 − 5 block = 55: shield absorbs 10, HP takes 45.
	if res.Outcome.DamageTaken != 55 || res.Outcome.ShieldTaken != 10 {
		t.Fatalf("taken=%d shield=%d, want 55/10", res.Outcome.DamageTaken, res.Outcome.ShieldTaken)
	}
	if h.Shield != 0 || h.CurrentHP != 55 {
		t.Fatalf("shield=%d hp=%d, want 0/55", h.Shield, h.CurrentHP)
	}
}

func TestResolve_PrayerConvertsHit(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	h.CurrentHP = 50
	h.ActiveSkill = "human_prayer"
	e := foodEntry("soup", domain.Macros{Calories: 200}, 150)
	InferTags(e)

	prayer := &domain.SkillNode{ID: "human_prayer", Effect: domain.EffectPrayer}
	res := Resolve(h, Input{
		Entry: e, Stage: domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Env: domain.Environment{Multiplier: 1.0}, Stats: baseStats(), Skill: prayer,
	}, testRNG())

	if res.Outcome.Damage != 0 {
		t.Fatalf("damage = %d, want 0 (converted to heal)", res.Outcome.Damage)
	}
	if res.Outcome.HealGranted != 20 {
		t.Fatalf("heal = %d, want floor(200/10)=20", res.Outcome.HealGranted)
	}
	if res.Outcome.SkillApplied != "human_prayer" || h.ActiveSkill != "" {
		t.Fatal("prayer must be consumed")
	}
}

func TestResolve_RageForcesMultiplierAndCostsHP(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	h.ActiveSkill = "orc_rage"
	e := foodEntry("steak", domain.Macros{Calories: 300, Protein: 40}, 200)
	InferTags(e)

	rage := &domain.SkillNode{ID: "orc_rage", Effect: domain.EffectRage}
	res := Resolve(h, Input{
		Entry: e, Stage: domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 2000},
		Env: domain.Environment{Multiplier: 1.0}, Stats: baseStats(), Skill: rage,
	}, testRNG())

	if res.Outcome.Multiplier != 3.0 {
		t.Fatalf("multiplier = %v, want forced 3.0", res.Outcome.Multiplier)
	}
	if res.Outcome.Damage != 900 {
		t.Fatalf("damage = %d, want 900", res.Outcome.Damage)
	}
	if res.Outcome.DamageTaken != 50 {
		t.Fatalf("rage self-cost = %d, want 50", res.Outcome.DamageTaken)
	}
}

func TestResolve_ExhaustionHalves(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	h.CurrentHP = 0
	e := foodEntry("plain rice", domain.Macros{Calories: 200, Carbs: 20}, 150)
	InferTags(e)

	res := Resolve(h, Input{
		Entry: e, Stage: domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Env: domain.Environment{Multiplier: 1.0}, Stats: baseStats(),
	}, testRNG())

	if res.Outcome.Damage != 100 {
		t.Fatalf("damage = %d, want floor(200×0.5)=100", res.Outcome.Damage)
	}
	if res.Outcome.ExpGranted != 15 {
		t.Fatalf("exp = %d, want halved 15", res.Outcome.ExpGranted)
	}
}

func TestResolve_OverkillBonusAndStageGold(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	e := foodEntry("feast", domain.Macros{Calories: 600, Protein: 30}, 200)
	InferTags(e)

	res := Resolve(h, Input{
		Entry: e, Stage: domain.StageInfo{Kind: domain.StageBoss, RemainingHP: 400},
		Env: domain.Environment{Multiplier: 1.0}, Stats: baseStats(),
	}, testRNG())

	if !res.StageCleared || !res.BossDown {
		t.Fatalf("clearing hit: cleared=%v bossDown=%v", res.StageCleared, res.BossDown)
	}
	// Base 30 + overkill 10.
	if res.Outcome.ExpGranted != 40 {
		t.Fatalf("exp = %d, want 40", res.Outcome.ExpGranted)
	}
	if res.Outcome.GoldGranted != 50 || h.Gold != 50 {
		t.Fatalf("boss gold = %d (hero %d), want 50", res.Outcome.GoldGranted, h.Gold)
	}
}

func TestResolve_CompositeBaseExp(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	e := foodEntry("bento", domain.Macros{Calories: 100}, 100)
	e.IsComposite = true
	InferTags(e)

	res := Resolve(h, Input{
		Entry: e, Stage: domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Env: domain.Environment{Multiplier: 1.0}, Stats: baseStats(),
	}, testRNG())
	if res.Outcome.ExpGranted != 60 {
		t.Fatalf("composite exp = %d, want 60", res.Outcome.ExpGranted)
	}
}

func TestResolve_NoWeaknessDefaultsClean(t *testing.T) {
	h := domain.NewHero(domain.RaceHuman)
	e := foodEntry("mystery dish", domain.Macros{Calories: 250, Carbs: 80}, 100)
	InferTags(e)

	res := Resolve(h, Input{
		Entry: e, Stage: domain.StageInfo{Kind: domain.StageMinion, RemainingHP: 500},
		Env: domain.Environment{Multiplier: 1.0}, Stats: baseStats(),
	}, testRNG())
	if res.Outcome.Resisted {
		t.Fatal("missing weakness data must never resist")
	}
	if res.Outcome.Damage != 250 {
		t.Fatalf("damage = %d, want plain 250", res.Outcome.Damage)
	}
}
