package sqlite

import (
	"database/sql"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// ─── Quests ─────────────────────────────────────────────────────────────────

// UpsertQuest inserts or updates a quest row.
func (d *DB) UpsertQuest(q domain.Quest) error {
	var accepted sql.NullInt64
	if !q.AcceptedAt.IsZero() {
		accepted = sql.NullInt64{Int64: q.AcceptedAt.Unix(), Valid: true}
	}
	_, err := d.db.Exec(
		`INSERT INTO quests (id, title, type, rarity, target, progress, status, accepted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, type=excluded.type, rarity=excluded.rarity,
			target=excluded.target, progress=excluded.progress,
			status=excluded.status, accepted_at=excluded.accepted_at`,
		q.ID, q.Title, string(q.Type), string(q.Rarity), q.Target, q.Progress,
		string(q.Status), accepted,
	)
	return err
}

// GetQuest retrieves a quest by ID; domain.ErrQuestUnknown if absent.
func (d *DB) GetQuest(id string) (*domain.Quest, error) {
	row := d.db.QueryRow(selectQuests+` WHERE id = ?`, id)
	q, err := scanQuest(row)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrQuestUnknown
	}
	return q, nil
}

// ListQuestsByStatus returns quests in any of the given states.
func (d *DB) ListQuestsByStatus(statuses ...domain.QuestStatus) ([]domain.Quest, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	query := selectQuests + ` WHERE status IN (?`
	args := []any{string(statuses[0])}
	for _, s := range statuses[1:] {
		query += `, ?`
		args = append(args, string(s))
	}
	query += `) ORDER BY accepted_at ASC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

// CountActiveQuests counts ACCEPTED + COMPLETED quests (board slots).
func (d *DB) CountActiveQuests() (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM quests WHERE status IN (?, ?)`,
		string(domain.QuestAccepted), string(domain.QuestCompleted),
	).Scan(&n)
	return n, err
}

// DeleteQuest removes a quest row (used when abandoning).
func (d *DB) DeleteQuest(id string) error {
	_, err := d.db.Exec(`DELETE FROM quests WHERE id = ?`, id)
	return err
}

const selectQuests = `SELECT id, title, type, rarity, target, progress, status, accepted_at FROM quests`

func scanQuest(s scanner) (*domain.Quest, error) {
	var q domain.Quest
	var typ, rarity, status string
	var accepted sql.NullInt64

	err := s.Scan(&q.ID, &q.Title, &typ, &rarity, &q.Target, &q.Progress, &status, &accepted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	q.Type = domain.QuestType(typ)
	q.Rarity = domain.QuestRarity(rarity)
	q.Status = domain.QuestStatus(status)
	if accepted.Valid {
		q.AcceptedAt = time.Unix(accepted.Int64, 0)
	}
	return &q, nil
}

// ─── Achievements ───────────────────────────────────────────────────────────

// UnlockAchievement records an achievement as unlocked.
// Returns false if already unlocked (idempotent).
func (d *DB) UnlockAchievement(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievements (id, unlocked_at, equipped) VALUES (?, ?, 0)`,
		id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// IsAchievementUnlocked checks whether an achievement has been unlocked.
func (d *DB) IsAchievementUnlocked(id string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM achievements WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUnlockedAchievements returns all unlocked achievements.
func (d *DB) ListUnlockedAchievements() ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.Query(
		`SELECT id, unlocked_at, equipped FROM achievements ORDER BY unlocked_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UnlockedAchievement
	for rows.Next() {
		var a domain.UnlockedAchievement
		var at int64
		if err := rows.Scan(&a.ID, &at, &a.Equipped); err != nil {
			return nil, err
		}
		a.UnlockedAt = time.Unix(at, 0)
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetAchievementEquipped toggles the equipped flag for unlocked gear.
func (d *DB) SetAchievementEquipped(id string, equipped bool) error {
	_, err := d.db.Exec(`UPDATE achievements SET equipped = ? WHERE id = ?`, equipped, id)
	return err
}

// ─── Gold Ledger ────────────────────────────────────────────────────────────
// Single-account ledger. The hero struct carries the running balance; the
// ledger keeps an auditable trail so deleting a log can point at the exact
// grant it reverses.

// GoldEntry is one row of the gold ledger.
type GoldEntry struct {
	ID          int64
	Timestamp   time.Time
	Type        string // "earn", "spend", "reverse"
	Amount      int64
	LogID       string
	Description string
	Balance     int64
}

// InsertGoldEntry appends a ledger row.
func (d *DB) InsertGoldEntry(e GoldEntry) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO gold_ledger (timestamp, type, amount, log_id, description, balance)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Timestamp.Unix(), e.Type, e.Amount, e.LogID, e.Description, e.Balance,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListGoldEntries returns the most recent ledger rows, newest first.
func (d *DB) ListGoldEntries(limit int) ([]GoldEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, timestamp, type, amount, log_id, description, balance
		 FROM gold_ledger ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GoldEntry
	for rows.Next() {
		var e GoldEntry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Type, &e.Amount, &e.LogID, &e.Description, &e.Balance); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}
