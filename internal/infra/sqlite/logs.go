package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// ─── Log Repository ─────────────────────────────────────────────────────────
// append/remove/list keyed by local date. Re-save is idempotent (upsert by
// id), and per-date order is most-recent-first.

// UpsertLog inserts or updates one committed log entry.
func (d *DB) UpsertLog(e domain.LogEntry) error {
	tags := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		tags[i] = string(t)
	}

	_, err := d.db.Exec(
		`INSERT INTO logs (id, date, kind, name, icon, category, grams,
			calories, protein, carbs, fat, sugar, sodium_mg,
			duration_min, amount_ml, tags, is_preset, is_composite, created_at,
			multiplier, damage, resisted, dodged, combo,
			damage_taken, shield_taken, heal_granted, exp_granted, gold_granted, skill_applied)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			date=excluded.date, kind=excluded.kind, name=excluded.name,
			icon=excluded.icon, category=excluded.category, grams=excluded.grams,
			calories=excluded.calories, protein=excluded.protein, carbs=excluded.carbs,
			fat=excluded.fat, sugar=excluded.sugar, sodium_mg=excluded.sodium_mg,
			duration_min=excluded.duration_min, amount_ml=excluded.amount_ml,
			tags=excluded.tags, is_preset=excluded.is_preset,
			is_composite=excluded.is_composite, created_at=excluded.created_at,
			multiplier=excluded.multiplier, damage=excluded.damage,
			resisted=excluded.resisted, dodged=excluded.dodged, combo=excluded.combo,
			damage_taken=excluded.damage_taken, shield_taken=excluded.shield_taken,
			heal_granted=excluded.heal_granted, exp_granted=excluded.exp_granted,
			gold_granted=excluded.gold_granted, skill_applied=excluded.skill_applied`,
		e.ID, e.Date, string(e.Kind), e.Name, e.Icon, e.Category, e.Grams,
		e.Macros.Calories, e.Macros.Protein, e.Macros.Carbs, e.Macros.Fat,
		e.Macros.Sugar, e.Macros.SodiumMg,
		e.DurationMin, e.AmountML, strings.Join(tags, ","), e.IsPreset,
		e.IsComposite, e.CreatedAt.Unix(),
		e.Outcome.Multiplier, e.Outcome.Damage, e.Outcome.Resisted,
		e.Outcome.Dodged, e.Outcome.Combo, e.Outcome.DamageTaken,
		e.Outcome.ShieldTaken, e.Outcome.HealGranted, e.Outcome.ExpGranted,
		e.Outcome.GoldGranted, e.Outcome.SkillApplied,
	)
	return err
}

// GetLog retrieves one entry by id. Returns domain.ErrLogNotFound if absent.
func (d *DB) GetLog(id string) (*domain.LogEntry, error) {
	row := d.db.QueryRow(selectLogs+` WHERE id = ?`, id)
	e, err := scanLog(row)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrLogNotFound
	}
	return e, nil
}

// DeleteLog removes an entry. Returns domain.ErrLogNotFound if absent.
func (d *DB) DeleteLog(id string) error {
	result, err := d.db.Exec(`DELETE FROM logs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrLogNotFound
	}
	return nil
}

// ListLogsByDate returns a day's entries, most recent first.
func (d *DB) ListLogsByDate(date string) ([]domain.LogEntry, error) {
	rows, err := d.db.Query(selectLogs+` WHERE date = ? ORDER BY created_at DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

// ListAllLogs returns every entry, newest date first.
func (d *DB) ListAllLogs() ([]domain.LogEntry, error) {
	rows, err := d.db.Query(selectLogs + ` ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

// CountLogsByDate returns how many entries a day has.
func (d *DB) CountLogsByDate(date string) (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM logs WHERE date = ?`, date).Scan(&n)
	return n, err
}

const selectLogs = `SELECT id, date, kind, name, icon, category, grams,
	calories, protein, carbs, fat, sugar, sodium_mg,
	duration_min, amount_ml, tags, is_preset, is_composite, created_at,
	multiplier, damage, resisted, dodged, combo,
	damage_taken, shield_taken, heal_granted, exp_granted, gold_granted, skill_applied
 FROM logs`

func scanLog(s scanner) (*domain.LogEntry, error) {
	var e domain.LogEntry
	var kind, tags string
	var createdAt int64

	err := s.Scan(&e.ID, &e.Date, &kind, &e.Name, &e.Icon, &e.Category, &e.Grams,
		&e.Macros.Calories, &e.Macros.Protein, &e.Macros.Carbs, &e.Macros.Fat,
		&e.Macros.Sugar, &e.Macros.SodiumMg,
		&e.DurationMin, &e.AmountML, &tags, &e.IsPreset, &e.IsComposite, &createdAt,
		&e.Outcome.Multiplier, &e.Outcome.Damage, &e.Outcome.Resisted,
		&e.Outcome.Dodged, &e.Outcome.Combo, &e.Outcome.DamageTaken,
		&e.Outcome.ShieldTaken, &e.Outcome.HealGranted, &e.Outcome.ExpGranted,
		&e.Outcome.GoldGranted, &e.Outcome.SkillApplied)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.Kind = domain.LogKind(kind)
	e.CreatedAt = time.Unix(createdAt, 0)
	if tags != "" {
		for _, t := range strings.Split(tags, ",") {
			e.Tags = append(e.Tags, domain.Tag(t))
		}
	}
	return &e, nil
}

func collectLogs(rows *sql.Rows) ([]domain.LogEntry, error) {
	var out []domain.LogEntry
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
