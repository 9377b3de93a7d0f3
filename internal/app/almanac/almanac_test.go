package almanac_test

import (
	"testing"

	"github.com/nutriquest-app/nutriquest/internal/app/almanac"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

func testAlmanac() *almanac.Almanac {
	bosses := []domain.Monster{
		{ID: "carb-golem", Weakness: domain.WeaknessLowCarb, Boss: true},
		{ID: "rice-king", Weakness: domain.WeaknessLowCarb, Boss: true},
		{ID: "butter-fiend", Weakness: domain.WeaknessLowFat, Boss: true},
		{ID: "sloth", Weakness: domain.WeaknessHighProtein, Boss: true},
	}
	minions := []domain.Monster{
		{ID: "m1"}, {ID: "m2"}, {ID: "m3"},
	}
	envs := []domain.Environment{
		{ID: "calm", Multiplier: 1.0},
		{ID: "sunny", Multiplier: 1.05},
		{ID: "storm", Multiplier: 0.9},
	}
	return almanac.New(bosses, minions, envs)
}

func TestPickIndex_Stable(t *testing.T) {
	for _, date := range []string{"2026-01-05", "2026-08-31", "1999-12-31"} {
		a := almanac.PickIndex(date, 7)
		b := almanac.PickIndex(date, 7)
		if a != b {
			t.Errorf("PickIndex(%q) not stable: %d vs %d", date, a, b)
		}
		if a < 0 || a >= 7 {
			t.Errorf("PickIndex(%q) out of range: %d", date, a)
		}
	}
}

func TestBoss_SameDateSamePick(t *testing.T) {
	a := testAlmanac()
	first := a.Boss("2026-09-01", almanac.ExcessCarbs)
	second := a.Boss("2026-09-01", almanac.ExcessCarbs)
	if first.ID != second.ID {
		t.Errorf("boss pick not deterministic: %s vs %s", first.ID, second.ID)
	}
	if first.Weakness != domain.WeaknessLowCarb {
		t.Errorf("carb excess should pick a low-carb boss, got %s", first.Weakness)
	}
}

func TestBoss_ExcessDecidesPool(t *testing.T) {
	a := testAlmanac()
	if got := a.Boss("2026-09-01", almanac.ExcessFat).Weakness; got != domain.WeaknessLowFat {
		t.Errorf("fat excess → low-fat boss, got %s", got)
	}
	if got := a.Boss("2026-09-01", almanac.ExcessNone).Weakness; got != domain.WeaknessHighProtein {
		t.Errorf("no excess → high-protein boss, got %s", got)
	}
}

func TestBoss_EmptyBookDefaultsToNoWeakness(t *testing.T) {
	a := almanac.New(nil, nil, nil)
	b := a.Boss("2026-09-01", almanac.ExcessCarbs)
	if b.Weakness != domain.WeaknessNone {
		t.Errorf("missing monster data must mean no weakness interaction, got %s", b.Weakness)
	}
}

func TestMinion_RotatesByStage(t *testing.T) {
	a := testAlmanac()
	m0 := a.Minion("2026-09-01", 0)
	m1 := a.Minion("2026-09-01", 1)
	if m0.ID == m1.ID {
		t.Error("consecutive stages should rotate minions")
	}
	again := a.Minion("2026-09-01", 0)
	if m0.ID != again.ID {
		t.Error("minion pick not deterministic")
	}
}

func TestEnvironment_Deterministic(t *testing.T) {
	a := testAlmanac()
	e1 := a.Environment("2026-03-14")
	e2 := a.Environment("2026-03-14")
	if e1.ID != e2.ID {
		t.Errorf("environment pick not deterministic: %s vs %s", e1.ID, e2.ID)
	}
}

func TestDominantExcess(t *testing.T) {
	target := 2000
	// 2000 kcal target: carb ref = 250g, fat ref = 66.7g.
	if got := almanac.DominantExcess(300, 40, target); got != almanac.ExcessCarbs {
		t.Errorf("expected carb excess, got %s", got)
	}
	if got := almanac.DominantExcess(100, 120, target); got != almanac.ExcessFat {
		t.Errorf("expected fat excess, got %s", got)
	}
	if got := almanac.DominantExcess(100, 30, target); got != almanac.ExcessNone {
		t.Errorf("expected no excess, got %s", got)
	}
}
