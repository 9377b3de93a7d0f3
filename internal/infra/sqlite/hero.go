package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// ─── Hero State ─────────────────────────────────────────────────────────────
// The hero struct is flattened into the hero KV table, one key per field
// and JSON for the two maps. LoadHero returns nil (no error) when no
// profile has been created yet.

// SaveHero persists the full hero state.
func (d *DB) SaveHero(h *domain.Hero) error {
	learned, err := json.Marshal(h.LearnedSkills)
	if err != nil {
		return fmt.Errorf("marshal learned skills: %w", err)
	}
	inv, err := json.Marshal(h.Inventory)
	if err != nil {
		return fmt.Errorf("marshal inventory: %w", err)
	}

	pairs := map[string]string{
		"race":           string(h.Race),
		"level":          strconv.Itoa(h.Level),
		"current_exp":    strconv.FormatInt(h.CurrentExp, 10),
		"skill_points":   strconv.Itoa(h.SkillPoints),
		"gold":           strconv.FormatInt(h.Gold, 10),
		"inventory":      string(inv),
		"learned_skills": string(learned),
		"active_skill":   h.ActiveSkill,
		"login_streak":   strconv.Itoa(h.LoginStreak),
		"last_login":     h.LastLoginDate,
		"current_hp":     strconv.Itoa(h.CurrentHP),
		"shield":         strconv.Itoa(h.Shield),
		"combo_count":    strconv.Itoa(h.ComboCount),
		"combo_last_at":  strconv.FormatInt(h.ComboLastAt.Unix(), 10),
		"protein_pool":   strconv.FormatFloat(h.ProteinPool, 'f', -1, 64),
		"exercise_pool":  strconv.FormatFloat(h.ExercisePool, 'f', -1, 64),
		"calorie_pool":   strconv.FormatFloat(h.CaloriePool, 'f', -1, 64),
	}
	for k, v := range pairs {
		if err := d.setHero(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

// LoadHero reads the hero state. Returns (nil, nil) when never saved.
func (d *DB) LoadHero() (*domain.Hero, error) {
	race, err := d.getHero("race")
	if err != nil {
		return nil, err
	}
	if race == "" {
		return nil, nil // no profile yet
	}

	h := domain.NewHero(domain.Race(race))

	geti := func(key string, dst *int) error {
		s, err := d.getHero(key)
		if err != nil {
			return err
		}
		if s != "" {
			*dst, _ = strconv.Atoi(s)
		}
		return nil
	}
	getf := func(key string, dst *float64) error {
		s, err := d.getHero(key)
		if err != nil {
			return err
		}
		if s != "" {
			*dst, _ = strconv.ParseFloat(s, 64)
		}
		return nil
	}

	if err := geti("level", &h.Level); err != nil {
		return nil, err
	}
	if s, err := d.getHero("current_exp"); err != nil {
		return nil, err
	} else if s != "" {
		h.CurrentExp, _ = strconv.ParseInt(s, 10, 64)
	}
	if err := geti("skill_points", &h.SkillPoints); err != nil {
		return nil, err
	}
	if s, err := d.getHero("gold"); err != nil {
		return nil, err
	} else if s != "" {
		h.Gold, _ = strconv.ParseInt(s, 10, 64)
	}
	if s, err := d.getHero("inventory"); err != nil {
		return nil, err
	} else if s != "" {
		_ = json.Unmarshal([]byte(s), &h.Inventory)
	}
	if s, err := d.getHero("learned_skills"); err != nil {
		return nil, err
	} else if s != "" {
		_ = json.Unmarshal([]byte(s), &h.LearnedSkills)
	}
	if s, err := d.getHero("active_skill"); err != nil {
		return nil, err
	} else {
		h.ActiveSkill = s
	}
	if err := geti("login_streak", &h.LoginStreak); err != nil {
		return nil, err
	}
	if s, err := d.getHero("last_login"); err != nil {
		return nil, err
	} else {
		h.LastLoginDate = s
	}
	if err := geti("current_hp", &h.CurrentHP); err != nil {
		return nil, err
	}
	if err := geti("shield", &h.Shield); err != nil {
		return nil, err
	}
	if err := geti("combo_count", &h.ComboCount); err != nil {
		return nil, err
	}
	if s, err := d.getHero("combo_last_at"); err != nil {
		return nil, err
	} else if s != "" {
		ts, _ := strconv.ParseInt(s, 10, 64)
		h.ComboLastAt = time.Unix(ts, 0)
	}
	if err := getf("protein_pool", &h.ProteinPool); err != nil {
		return nil, err
	}
	if err := getf("exercise_pool", &h.ExercisePool); err != nil {
		return nil, err
	}
	if err := getf("calorie_pool", &h.CaloriePool); err != nil {
		return nil, err
	}

	return h, nil
}

func (d *DB) setHero(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO hero (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

func (d *DB) getHero(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM hero WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Lifetime Counters ──────────────────────────────────────────────────────
// Aggregate counters feeding achievement predicates.

// AddCounter increments a lifetime counter by delta.
func (d *DB) AddCounter(key string, delta float64) error {
	_, err := d.db.Exec(
		`INSERT INTO counters (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = value + excluded.value`,
		key, delta,
	)
	return err
}

// GetCounter reads a lifetime counter (0 if never written).
func (d *DB) GetCounter(key string) (float64, error) {
	var v float64
	err := d.db.QueryRow(`SELECT value FROM counters WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return v, err
}
