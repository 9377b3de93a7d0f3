package domain

// SkillEffect is the closed set of things a skill can do. Every variant has
// an explicit handler in the battle/progression code — no string-keyed
// dispatch tables.
type SkillEffect int

const (
	// Passive effects, scale with learned level.
	EffectStrengthMult SkillEffect = iota // +ValuePerLevel × level to strength multiplier
	EffectAgilityMult                     // same, agility
	EffectMaxHPMult                       // same, derived max HP
	EffectExpRate                         // +ValuePerLevel × level to the experience rate
	EffectBlock                           // flat retaliation reduction per level
	EffectLifesteal                       // heal fraction of dealt damage per level

	// Active effects, armed then consumed by the next battle.
	EffectPrayer    // convert the hit into pure healing
	EffectRage      // force multiplier to 3.0, costs 50 HP
	EffectFocus     // multiplier is at least 1.5
	EffectDoubleExp // double the battle's base experience
)

// Active reports whether the effect is a one-shot armed skill.
func (e SkillEffect) Active() bool {
	switch e {
	case EffectPrayer, EffectRage, EffectFocus, EffectDoubleExp:
		return true
	}
	return false
}

// SkillNode is one node of a race's skill tree.
type SkillNode struct {
	ID            string      `json:"id"`
	Race          Race        `json:"race"`
	Name          string      `json:"name"`
	Effect        SkillEffect `json:"effect"`
	ValuePerLevel float64     `json:"value_per_level"`
	MaxLevel      int         `json:"max_level"`
	Cost          int         `json:"cost"` // skill points per level
	RequiredLevel int         `json:"required_level"`
	RequiredPower int         `json:"required_power"`
	Parent        string      `json:"parent"` // prerequisite node ID, "" = root
}
