package battle

import (
	"math"
	"math/rand"

	"github.com/nutriquest-app/nutriquest/internal/app/formula"
	"github.com/nutriquest-app/nutriquest/internal/app/progression"
	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Weakness interaction multipliers.
const (
	resistMult   = 0.3 // contradicting the weakness, full penalty
	softenedMult = 0.8 // clean composite meal, relaxed penalty
	favoredMult  = 1.5 // matching the weakness
)

// Macro thresholds the weakness check reads. The "low" thresholds grant
// the favorable bonus; the "high" thresholds (shared with tag inference)
// trigger the resist.
const (
	carbLowG    = 10
	fatLowG     = 5
	proteinLowG = 5
	junkKcalMin = 300 // calorie floor before low protein counts against high-protein weakness
)

// Retaliation constants.
const (
	retaliationBase = 30
	exhaustedFactor = 0.5
	rageHPCost      = 50
)

// Base experience per food log.
const (
	baseExp          = 30
	baseExpComposite = 60
	overkillBonusExp = 10
)

// Gold dropped when a hit finishes a stage.
const (
	minionClearGold = 10
	bossClearGold   = 50
)

// Input is everything one battle resolution reads beyond the hero itself.
// Stage is the state before this hit lands.
type Input struct {
	Entry   *domain.LogEntry
	Stage   domain.StageInfo
	Monster domain.Monster
	Env     domain.Environment
	Stats   progression.Derived

	// Skill is the armed one-shot active skill; nil when nothing is armed.
	Skill *domain.SkillNode
	// Lifesteal is the passive heal fraction of dealt damage.
	Lifesteal float64
}

// Result reports what Resolve did beyond the outcome recorded on the entry.
type Result struct {
	Outcome      domain.BattleOutcome
	LevelsUp     int
	StageCleared bool // this hit finished the stage it landed on
	BossDown     bool
}

// Resolve runs one full battle resolution against the hero: weakness and
// resistance, combo transition, modifier stacking, damage, retaliation and
// the reward grant. It mutates the hero and writes the applied outcome
// onto the entry. Runs to completion; there is no partial battle.
func Resolve(h *domain.Hero, in Input, rng *rand.Rand) Result {
	e := in.Entry
	var out domain.BattleOutcome

	mult, resisted, softened := weaknessCheck(e, in.Monster)
	out.Resisted = resisted

	combo := AdvanceCombo(h, e.Tags, e.CreatedAt)
	out.Combo = combo

	exhausted := h.Exhausted()

	if !resisted {
		mult *= ComboMultiplier(combo)
	}
	if exhausted {
		mult *= exhaustedFactor
	}
	if in.Env.Multiplier > 0 {
		mult *= in.Env.Multiplier
	}

	prayer, rage, doubleExp := false, false, false
	if in.Skill != nil {
		switch in.Skill.Effect {
		case domain.EffectPrayer:
			prayer = true
		case domain.EffectRage:
			rage = true
			mult = 3.0
		case domain.EffectFocus:
			if mult < 1.5 {
				mult = 1.5
			}
		case domain.EffectDoubleExp:
			doubleExp = true
		}
		out.SkillApplied = in.Skill.ID
		h.ActiveSkill = ""
	}
	mult = formula.Sanitize(mult)
	out.Multiplier = mult

	damage := formula.SanitizeInt(e.Macros.Calories * mult)
	if damage < 0 {
		damage = 0
	}

	overkill := false
	if !in.Stage.Overloaded && in.Stage.RemainingHP > 0 && damage >= in.Stage.RemainingHP {
		overkill = true
	}

	if prayer {
		// The hit becomes pure healing; nothing lands on the stage.
		damage = 0
		overkill = false
		out.HealGranted += progression.Heal(h, formula.SanitizeInt(e.Macros.Calories/10), in.Stats.MaxHP)
	} else if (resisted && !softened) || in.Stage.Overloaded {
		if combo > 1 {
			out.Dodged = true
		} else if rng.Intn(100) < in.Stats.DodgePct {
			out.Dodged = true
		} else {
			retaliation := retaliationBase
			if in.Stage.Overloaded {
				retaliation *= 2
			}
			retaliation -= in.Stats.Block
			if retaliation < 1 {
				retaliation = 1
			}
			shieldLoss, hpLoss := progression.ApplyDamage(h, retaliation)
			out.ShieldTaken += shieldLoss
			out.DamageTaken += shieldLoss + hpLoss
		}
	} else {
		heal := formula.SanitizeInt(e.Macros.Calories / 20)
		heal += formula.SanitizeInt(in.Lifesteal * float64(damage))
		out.HealGranted += progression.Heal(h, heal, in.Stats.MaxHP)
	}

	if rage {
		shieldLoss, hpLoss := progression.ApplyDamage(h, rageHPCost)
		out.ShieldTaken += shieldLoss
		out.DamageTaken += shieldLoss + hpLoss
	}

	out.Damage = damage

	exp := float64(baseExp)
	if e.IsComposite {
		exp = baseExpComposite
	}
	if doubleExp {
		exp *= 2
	}
	if exhausted {
		exp *= 0.5
	}
	if overkill && damage > 0 {
		exp += overkillBonusExp
	}
	expRes := progression.AddExperience(h, exp, in.Stats.ExpRate, in.Stats.MaxHP)
	out.ExpGranted = expRes.Granted
	out.HealGranted += expRes.Healed

	res := Result{LevelsUp: expRes.LevelsGained}
	if damage > 0 && in.Stage.RemainingHP > 0 && damage >= in.Stage.RemainingHP {
		res.StageCleared = true
		gold := int64(minionClearGold)
		if in.Stage.Kind == domain.StageBoss {
			gold = bossClearGold
			res.BossDown = true
		}
		h.Gold += gold
		out.GoldGranted = gold
	}

	out.Multiplier = math.Round(out.Multiplier*1000) / 1000
	e.Outcome = out
	res.Outcome = out
	return res
}

// weaknessCheck resolves the monster's weakness against the item. A
// contradiction gives the full resist penalty, relaxed to a softened
// penalty with no retaliation for clean preset/composite meals. Matching
// the weakness grants the favored bonus. Monsters without a weakness
// never interact.
func weaknessCheck(e *domain.LogEntry, m domain.Monster) (mult float64, resisted, softened bool) {
	mult = 1.0
	cleanMeal := (e.IsPreset || e.IsComposite) && e.Tags.Has(domain.TagClean)

	contradict := func() (float64, bool, bool) {
		if cleanMeal {
			return softenedMult, true, true
		}
		return resistMult, true, false
	}

	switch m.Weakness {
	case domain.WeaknessLowCarb:
		if e.Tags.Has(domain.TagHighCarb) || e.Macros.Carbs > carbHighG {
			return contradict()
		}
		if e.Macros.Carbs < carbLowG {
			return favoredMult, false, false
		}
	case domain.WeaknessLowFat:
		if e.Tags.Has(domain.TagHighFat) || e.Macros.Fat > fatHighG {
			return contradict()
		}
		if e.Macros.Fat < fatLowG {
			return favoredMult, false, false
		}
	case domain.WeaknessHighProtein:
		if e.Tags.Has(domain.TagHighProtein) || e.Macros.Protein >= proteinHighG {
			return favoredMult, false, false
		}
		if e.Macros.Protein < proteinLowG && e.Macros.Calories >= junkKcalMin {
			return contradict()
		}
	}
	return mult, false, false
}
