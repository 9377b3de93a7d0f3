// Package formula holds the pure numeric functions of the engine:
// energy targets, BMI, stat derivation and combat power. Everything here is
// deterministic and side-effect free.
package formula

import (
	"math"

	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Defaults and floors for the energy target.
const (
	MinDailyTarget     = 1200
	DefaultDailyTarget = 2000
)

// Sanitize replaces NaN/Inf with 0. Malformed historical data must never
// propagate into persisted state, so every additive mutation goes through
// this guard first.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SanitizeInt floors a sanitized float to int.
func SanitizeInt(v float64) int {
	return int(math.Floor(Sanitize(v)))
}

// BMR computes the daily energy target in kcal using Mifflin-St Jeor,
// scaled by the activity multiplier (1.2–1.9) and shifted by the goal
// offset. The result is floored at MinDailyTarget; any NaN input yields
// DefaultDailyTarget.
func BMR(weightKg, heightCm, age float64, gender domain.Gender, activity float64, goal domain.Goal) int {
	if math.IsNaN(weightKg) || math.IsNaN(heightCm) || math.IsNaN(age) || math.IsNaN(activity) {
		return DefaultDailyTarget
	}

	sign := 5.0
	if gender == domain.GenderFemale {
		sign = -161.0
	}

	base := 10*weightKg + 6.25*heightCm - 5*age + sign
	target := math.Round(base*activity) + goal.Offset()

	if math.IsNaN(target) {
		return DefaultDailyTarget
	}
	if target < MinDailyTarget {
		return MinDailyTarget
	}
	return int(target)
}

// BMI computes weight / height² with height in centimeters.
// Returns 0 for non-positive height.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return Sanitize(weightKg / (m * m))
}

// StatCap is the per-level ceiling applied to every derived stat.
func StatCap(level int) int {
	return 50 + level*20
}

// DeriveStat converts a lifetime pool value into a combat stat:
// floor(pool/divisor) + base, scaled by the race multiplier, floored,
// then capped by the level stat cap.
func DeriveStat(pool, divisor float64, base int, raceMult float64, level int) int {
	if divisor <= 0 {
		return base
	}
	raw := math.Floor(Sanitize(pool)/divisor) + float64(base)
	stat := int(math.Floor(raw * raceMult))
	if cap := StatCap(level); stat > cap {
		stat = cap
	}
	if stat < 0 {
		stat = 0
	}
	return stat
}

// CombatPower aggregates experience, the three combat stats and gear into
// a single gating number: floor(exp×1.5 + 10×(str+agi+vit) + gearPower).
func CombatPower(exp int64, str, agi, vit, gearPower int) int {
	return SanitizeInt(float64(exp)*1.5 + 10*float64(str+agi+vit) + float64(gearPower))
}

// NextLevelExp is the experience threshold to leave the given level:
// floor(100 × level^2.2). Strictly increasing in level.
func NextLevelExp(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(100 * math.Pow(float64(level), 2.2)))
}
