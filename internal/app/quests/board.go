package quests

import (
	"fmt"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/app/almanac"
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/catalog"
	"github.com/nutriquest-app/nutriquest/internal/infra/sqlite"
)

// DailyOffers is how many quests the board shows each day.
const DailyOffers = 4

// offerStride spaces the deterministic walk through the template pool so
// consecutive days do not show near-identical boards.
const offerStride = 7

// Board is the quest service: daily offers, lifecycle transitions and
// per-log progress, persisted through the sqlite store.
type Board struct {
	db *sqlite.DB
}

// NewBoard creates a quest board over the given store.
func NewBoard(db *sqlite.DB) *Board {
	return &Board{db: db}
}

// QuestID keys a quest row by day and template slug, so accepting the same
// offer twice on one day is a single row.
func QuestID(date, slug string) string {
	return fmt.Sprintf("%s:%s", date, slug)
}

// Daily returns the board's offers for a date. The picks are a pure
// function of the date string; offers already accepted today come back
// with their stored progress and status.
func (b *Board) Daily(date string) ([]domain.Quest, error) {
	n := len(catalog.QuestTemplates)
	if n == 0 {
		return nil, nil
	}

	start := almanac.PickIndex(date, n)
	seen := map[string]bool{}
	var offers []domain.Quest
	for i := 0; len(offers) < DailyOffers && i < n; i++ {
		tpl := catalog.QuestTemplates[(start+i*offerStride)%n]
		if seen[tpl.Slug] {
			continue
		}
		seen[tpl.Slug] = true

		id := QuestID(date, tpl.Slug)
		stored, err := b.db.GetQuest(id)
		if err == nil {
			offers = append(offers, *stored)
			continue
		}
		if err != domain.ErrQuestUnknown {
			return nil, err
		}
		offers = append(offers, domain.Quest{
			ID: id, Title: tpl.Title, Type: tpl.Type, Rarity: tpl.Rarity,
			Target: tpl.Target, Status: domain.QuestAvailable,
		})
	}
	return offers, nil
}

// Accept takes an offer from the board. Fails without mutation when the
// template is unknown, the quest is already taken, or all board slots are
// occupied.
func (b *Board) Accept(date, slug string, now time.Time) (*domain.Quest, error) {
	tpl := catalog.TemplateBySlug(slug)
	if tpl == nil {
		return nil, domain.ErrQuestUnknown
	}

	id := QuestID(date, slug)
	if stored, err := b.db.GetQuest(id); err == nil {
		switch stored.Status {
		case domain.QuestClaimed:
			return nil, domain.ErrQuestClaimed
		case domain.QuestAccepted, domain.QuestCompleted:
			return stored, nil
		}
	} else if err != domain.ErrQuestUnknown {
		return nil, err
	}

	active, err := b.db.CountActiveQuests()
	if err != nil {
		return nil, err
	}
	if active >= domain.MaxActiveQuests {
		return nil, domain.ErrQuestSlotsFull
	}

	q := domain.Quest{
		ID: id, Title: tpl.Title, Type: tpl.Type, Rarity: tpl.Rarity,
		Target: tpl.Target, Status: domain.QuestAccepted, AcceptedAt: now,
	}
	if err := b.db.UpsertQuest(q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Abandon drops an accepted quest, freeing its board slot. The row is
// removed, so the offer reappears as AVAILABLE.
func (b *Board) Abandon(id string) error {
	q, err := b.db.GetQuest(id)
	if err != nil {
		return err
	}
	if !q.Active() {
		return domain.ErrQuestNotAccepted
	}
	return b.db.DeleteQuest(id)
}

// Claim collects a completed quest's reward. Returns the gold payout;
// claiming twice fails with ErrQuestClaimed.
func (b *Board) Claim(id string) (*domain.Quest, int64, error) {
	q, err := b.db.GetQuest(id)
	if err != nil {
		return nil, 0, err
	}
	switch q.Status {
	case domain.QuestClaimed:
		return nil, 0, domain.ErrQuestClaimed
	case domain.QuestCompleted:
	default:
		return nil, 0, domain.ErrQuestNotCompleted
	}

	q.Status = domain.QuestClaimed
	if err := b.db.UpsertQuest(*q); err != nil {
		return nil, 0, err
	}
	return q, q.Rarity.GoldReward(), nil
}

// Active lists the quests currently occupying board slots.
func (b *Board) Active() ([]domain.Quest, error) {
	return b.db.ListQuestsByStatus(domain.QuestAccepted, domain.QuestCompleted)
}

// ApplyLog feeds one committed log to every accepted quest and persists
// the ones that moved. Returns the quests this log completed.
func (b *Board) ApplyLog(e *domain.LogEntry) ([]domain.Quest, error) {
	accepted, err := b.db.ListQuestsByStatus(domain.QuestAccepted)
	if err != nil {
		return nil, err
	}

	var done []domain.Quest
	for i := range accepted {
		q := &accepted[i]
		changed, completed := Advance(q, e)
		if !changed && !completed {
			continue
		}
		if err := b.db.UpsertQuest(*q); err != nil {
			return nil, err
		}
		if completed {
			done = append(done, *q)
		}
	}
	return done, nil
}
