package session

import (
	"sort"

	"github.com/nutriquest-app/nutriquest/internal/app/progression"
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
	"github.com/nutriquest-app/nutriquest/internal/infra/sqlite"
)

// ─── Quests ─────────────────────────────────────────────────────────────────

// DailyQuests returns today's quest board offers.
func (s *Session) DailyQuests() ([]domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return nil, domain.ErrProfileMissing
	}
	s.advanceDay()
	return s.board.Daily(s.today())
}

// ActiveQuests lists the quests occupying board slots.
func (s *Session) ActiveQuests() ([]domain.Quest, error) {
	return s.board.Active()
}

// AcceptQuest takes one of today's offers.
func (s *Session) AcceptQuest(slug string) (*domain.Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return nil, domain.ErrProfileMissing
	}
	s.advanceDay()
	return s.board.Accept(s.today(), slug, s.now())
}

// AbandonQuest drops an accepted quest.
func (s *Session) AbandonQuest(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return domain.ErrProfileMissing
	}
	return s.board.Abandon(id)
}

// ClaimQuest collects a completed quest's gold exactly once.
func (s *Session) ClaimQuest(id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return 0, domain.ErrProfileMissing
	}

	q, gold, err := s.board.Claim(id)
	if err != nil {
		return 0, err
	}
	s.hero.Gold += gold
	s.bumpCounter(ctrQuestsClaimed, 1)
	s.recordGold("earn", gold, "", "quest reward: "+q.Title)
	s.checkAchievements()
	s.saveHero()
	return gold, nil
}

// ─── Skills ─────────────────────────────────────────────────────────────────

// SkillTree returns the hero's racial tree with learned levels.
func (s *Session) SkillTree() ([]domain.SkillNode, map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return nil, nil, domain.ErrProfileMissing
	}
	learned := map[string]int{}
	for k, v := range s.hero.LearnedSkills {
		learned[k] = v
	}
	return catalog.SkillTree(s.hero.Race), learned, nil
}

// UpgradeSkill spends a skill point on a tree node.
func (s *Session) UpgradeSkill(nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return domain.ErrProfileMissing
	}
	if err := progression.UpgradeSkill(s.hero, nodeID, s.derived().CombatPower); err != nil {
		return err
	}
	s.saveHero()
	return nil
}

// ArmSkill arms (or with "" disarms) a one-shot active skill.
func (s *Session) ArmSkill(nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return domain.ErrProfileMissing
	}
	if err := progression.ArmSkill(s.hero, nodeID); err != nil {
		return err
	}
	s.saveHero()
	return nil
}

// Rebirth consumes a rebirth potion to switch race, refunding all skill
// points.
func (s *Session) Rebirth(newRace domain.Race) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return domain.ErrProfileMissing
	}
	if err := progression.Rebirth(s.hero, newRace); err != nil {
		return err
	}
	s.saveHero()
	return nil
}

// ─── Shop & Achievements ────────────────────────────────────────────────────

// BuyItem spends gold on a consumable.
func (s *Session) BuyItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return domain.ErrProfileMissing
	}
	price, ok := catalog.ItemPrices[itemID]
	if !ok {
		return domain.ErrItemUnavailable
	}
	if s.hero.Gold < price {
		return domain.ErrInsufficientGold
	}
	s.hero.Gold -= price
	s.hero.AddItem(itemID, 1)
	s.recordGold("spend", -price, "", "shop: "+itemID)
	s.saveHero()
	return nil
}

// EquipAchievement toggles an unlocked achievement's gear.
func (s *Session) EquipAchievement(id string, equipped bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hero == nil {
		return domain.ErrProfileMissing
	}
	return s.checker.Equip(id, equipped)
}

// Achievements lists the full catalog along with unlock state, unlocked
// first, then by catalog order.
func (s *Session) Achievements() ([]AchievementView, error) {
	unlocked, err := s.db.ListUnlockedAchievements()
	if err != nil {
		return nil, err
	}
	state := map[string]domain.UnlockedAchievement{}
	for _, u := range unlocked {
		state[u.ID] = u
	}

	var out []AchievementView
	for _, def := range catalog.Achievements() {
		v := AchievementView{ID: def.ID, Name: def.Name, Icon: def.Icon, Reward: def.Reward}
		if u, ok := state[def.ID]; ok {
			v.Unlocked = true
			v.Equipped = u.Equipped
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Unlocked && !out[j].Unlocked })
	return out, nil
}

// AchievementView is an achievement definition plus its unlock state.
type AchievementView struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Icon     string           `json:"icon"`
	Reward   domain.Equipment `json:"reward"`
	Unlocked bool             `json:"unlocked"`
	Equipped bool             `json:"equipped"`
}

// GoldHistory returns the most recent gold ledger rows.
func (s *Session) GoldHistory(limit int) ([]sqlite.GoldEntry, error) {
	return s.db.ListGoldEntries(limit)
}
