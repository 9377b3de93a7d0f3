// Package metrics provides Prometheus metrics for NutriQuest: counters and
// gauges for battles, damage, progression, quests and settlements. Exposed
// on /metrics when telemetry is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Battles ────────────────────────────────────────────────────────────────

// BattlesResolved tracks resolved battles by log kind.
var BattlesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "battles_resolved_total",
	Help:      "Total battle resolutions by log kind.",
}, []string{"kind"})

// DamageDealt tracks total effective damage dealt to stages.
var DamageDealt = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "damage_dealt_total",
	Help:      "Total effective damage dealt.",
})

// HitsResisted tracks weakness-mismatch resists.
var HitsResisted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "hits_resisted_total",
	Help:      "Total resisted hits.",
})

// RetaliationsTaken tracks retaliations that landed on the hero.
var RetaliationsTaken = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "retaliations_taken_total",
	Help:      "Total retaliations that hit the hero.",
})

// ComboCurrent tracks the current combo counter.
var ComboCurrent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "nutriquest",
	Name:      "combo_current",
	Help:      "Current combo counter.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// LevelUps tracks level gains.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "level_ups_total",
	Help:      "Total levels gained.",
})

// HeroLevel tracks the current hero level.
var HeroLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "nutriquest",
	Name:      "hero_level",
	Help:      "Current hero level.",
})

// HeroHP tracks current hero HP.
var HeroHP = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "nutriquest",
	Name:      "hero_hp",
	Help:      "Current hero HP.",
})

// GoldBalance tracks the current gold balance.
var GoldBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "nutriquest",
	Name:      "gold_balance",
	Help:      "Current gold balance.",
})

// ─── Quests & Settlement ────────────────────────────────────────────────────

// QuestsCompleted tracks quest completions by type.
var QuestsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "quests_completed_total",
	Help:      "Total quests completed.",
}, []string{"type"})

// AchievementsUnlocked tracks achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// Settlements tracks daily settlements by outcome ("victory"/"defeat").
var Settlements = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nutriquest",
	Name:      "settlements_total",
	Help:      "Total daily settlements by outcome.",
}, []string{"outcome"})
