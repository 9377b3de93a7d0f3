package progression

import (
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
)

// UpgradeSkill spends one skill point on a node of the hero's racial tree.
// All gates are checked before anything mutates, so a failed upgrade leaves
// the hero untouched.
func UpgradeSkill(h *domain.Hero, nodeID string, combatPower int) error {
	node := catalog.SkillByID(nodeID)
	if node == nil {
		return domain.ErrSkillUnknown
	}
	if node.Race != h.Race {
		return domain.ErrSkillWrongRace
	}
	cur := h.LearnedSkills[nodeID]
	if cur >= node.MaxLevel {
		return domain.ErrSkillMaxed
	}
	if h.SkillPoints < node.Cost {
		return domain.ErrSkillPoints
	}
	if h.Level < node.RequiredLevel {
		return domain.ErrSkillLevelGate
	}
	if combatPower < node.RequiredPower {
		return domain.ErrSkillPowerGate
	}
	if node.Parent != "" && h.LearnedSkills[node.Parent] == 0 {
		return domain.ErrSkillParentRequired
	}

	h.SkillPoints -= node.Cost
	if h.LearnedSkills == nil {
		h.LearnedSkills = map[string]int{}
	}
	h.LearnedSkills[nodeID] = cur + 1
	return nil
}

// ArmSkill sets the hero's single armed active skill. Passing an empty ID
// disarms. Only learned nodes with an active effect can be armed.
func ArmSkill(h *domain.Hero, nodeID string) error {
	if nodeID == "" {
		h.ActiveSkill = ""
		return nil
	}
	node := catalog.SkillByID(nodeID)
	if node == nil {
		return domain.ErrSkillUnknown
	}
	if h.LearnedSkills[nodeID] == 0 {
		return domain.ErrSkillUnknown
	}
	if !node.Effect.Active() {
		return domain.ErrSkillNotActive
	}
	h.ActiveSkill = nodeID
	return nil
}

// Rebirth consumes a rebirth potion to change race. Every learned skill is
// refunded at its full point cost, the tree is wiped and the armed skill
// cleared. Level, experience, gold, pools and streak all survive.
func Rebirth(h *domain.Hero, newRace domain.Race) error {
	if !newRace.IsValid() {
		return domain.ErrUnknownRace
	}
	if !h.ConsumeItem(domain.ItemRebirthPotion) {
		return domain.ErrRebirthPotionRequired
	}

	refund := 0
	for id, lvl := range h.LearnedSkills {
		if node := catalog.SkillByID(id); node != nil {
			refund += node.Cost * lvl
		}
	}
	h.SkillPoints += refund
	h.LearnedSkills = map[string]int{}
	h.ActiveSkill = ""
	h.Race = newRace
	return nil
}
