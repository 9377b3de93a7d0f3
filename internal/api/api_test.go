package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/app/session"
	"github.com/nutriquest-app/nutriquest/internal/domain"
	"github.com/nutriquest-app/nutriquest/internal/infra/sqlite"
)

var testProfile = domain.Profile{
	WeightKg: 65, HeightCm: 170, Age: 25,
	Gender: domain.GenderMale, Activity: 1.2, Goal: domain.GoalMaintain,
}

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	sess, err := session.New(db, testProfile,
		session.WithClock(func() time.Time { return now }),
		session.WithRand(rand.New(rand.NewSource(7))),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	srv := NewServer(sess)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func onboard(t *testing.T, ts *httptest.Server) {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/hero", map[string]string{"race": "HUMAN"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("onboard status = %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestHeroBeforeOnboard(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/hero")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /api/hero status = %d, want 404", resp.StatusCode)
	}
}

func TestOnboardAndHero(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp, err := http.Get(ts.URL + "/api/hero")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Hero struct {
			Race  string `json:"race"`
			Level int    `json:"level"`
		} `json:"hero"`
		Derived struct {
			MaxHP int
		} `json:"derived"`
	}
	decode(t, resp, &body)
	if body.Hero.Race != "HUMAN" || body.Hero.Level != 1 {
		t.Errorf("hero = %+v", body.Hero)
	}
	if body.Derived.MaxHP != 150 {
		t.Errorf("max_hp = %d, want 150", body.Derived.MaxHP)
	}

	// Second onboarding must fail.
	resp2 := postJSON(t, ts.URL+"/api/hero", map[string]string{"race": "ELF"})
	defer resp2.Body.Close()
	if resp2.StatusCode == http.StatusCreated {
		t.Error("second onboard succeeded, want error")
	}
}

func TestTarget(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp, err := http.Get(ts.URL + "/api/target")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		DailyTarget int `json:"daily_target"`
	}
	decode(t, resp, &body)
	if body.DailyTarget != 1911 {
		t.Errorf("daily_target = %d, want 1911", body.DailyTarget)
	}
}

func TestLogFoodAndList(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp := postJSON(t, ts.URL+"/api/logs/food", map[string]interface{}{
		"name": "oatmeal",
		"macros": map[string]float64{
			"calories": 300, "protein": 10, "carbs": 50,
		},
		"grams": 250,
		"clean": true,
	})
	var entry struct {
		ID      string `json:"id"`
		Outcome struct {
			Damage int64 `json:"damage"`
		} `json:"outcome"`
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("log food status = %d", resp.StatusCode)
	}
	decode(t, resp, &entry)
	if entry.ID == "" {
		t.Fatal("entry has no id")
	}
	if entry.Outcome.Damage <= 0 {
		t.Errorf("damage = %d, want > 0", entry.Outcome.Damage)
	}

	listResp, err := http.Get(ts.URL + "/api/logs/?date=2026-08-31")
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Logs []struct {
			ID string `json:"id"`
		} `json:"logs"`
	}
	decode(t, listResp, &list)
	if len(list.Logs) != 1 || list.Logs[0].ID != entry.ID {
		t.Errorf("logs = %+v, want the logged entry", list.Logs)
	}

	// Delete reverses the log.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/logs/"+entry.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Errorf("delete status = %d", delResp.StatusCode)
	}

	// Deleting again is a 404.
	delResp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp2.Body.Close()
	if delResp2.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", delResp2.StatusCode)
	}
}

func TestLogFoodValidation(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp := postJSON(t, ts.URL+"/api/logs/food", map[string]interface{}{
		"name":   "",
		"macros": map[string]float64{"calories": 100},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", resp.StatusCode)
	}

	resp2 := postJSON(t, ts.URL+"/api/logs/food", map[string]interface{}{
		"name":   "air",
		"macros": map[string]float64{"calories": 0},
	})
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("zero calories status = %d, want 400", resp2.StatusCode)
	}
}

func TestStage(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp, err := http.Get(ts.URL + "/api/stage")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Stage struct {
			Target int `json:"target"`
		} `json:"stage"`
		Monster struct {
			Name string `json:"name"`
		} `json:"monster"`
	}
	decode(t, resp, &body)
	if body.Stage.Target != 1911 {
		t.Errorf("target = %d, want 1911", body.Stage.Target)
	}
	if body.Monster.Name == "" {
		t.Error("monster has no name")
	}
}

func TestQuestLifecycle(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp, err := http.Get(ts.URL + "/api/quests/daily")
	if err != nil {
		t.Fatal(err)
	}
	var daily struct {
		Quests []struct {
			ID string `json:"id"`
		} `json:"quests"`
	}
	decode(t, resp, &daily)
	if len(daily.Quests) != 4 {
		t.Fatalf("daily quests = %d, want 4", len(daily.Quests))
	}

	// Quest IDs are "date:slug"; accepting takes the slug.
	slug := strings.SplitN(daily.Quests[0].ID, ":", 2)[1]
	acceptResp := postJSON(t, ts.URL+"/api/quests/accept", map[string]string{"slug": slug})
	var accepted struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if acceptResp.StatusCode != http.StatusCreated {
		t.Fatalf("accept status = %d", acceptResp.StatusCode)
	}
	decode(t, acceptResp, &accepted)
	if accepted.Status != "ACCEPTED" {
		t.Errorf("status = %q, want ACCEPTED", accepted.Status)
	}

	activeResp, err := http.Get(ts.URL + "/api/quests/active")
	if err != nil {
		t.Fatal(err)
	}
	var active struct {
		Quests []struct {
			ID string `json:"id"`
		} `json:"quests"`
	}
	decode(t, activeResp, &active)
	if len(active.Quests) != 1 {
		t.Fatalf("active quests = %d, want 1", len(active.Quests))
	}

	// Claiming an unfinished quest conflicts.
	claimResp := postJSON(t, ts.URL+"/api/quests/"+accepted.ID+"/claim", struct{}{})
	claimResp.Body.Close()
	if claimResp.StatusCode != http.StatusConflict {
		t.Errorf("claim status = %d, want 409", claimResp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/quests/"+accepted.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	abandonResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	abandonResp.Body.Close()
	if abandonResp.StatusCode != http.StatusOK {
		t.Errorf("abandon status = %d", abandonResp.StatusCode)
	}
}

func TestSkillTreeAndGold(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp, err := http.Get(ts.URL + "/api/skills/")
	if err != nil {
		t.Fatal(err)
	}
	var tree struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	decode(t, resp, &tree)
	if len(tree.Nodes) == 0 {
		t.Fatal("skill tree is empty")
	}

	// Fresh hero has no skill points.
	up := postJSON(t, ts.URL+fmt.Sprintf("/api/skills/%s/upgrade", tree.Nodes[0].ID), struct{}{})
	up.Body.Close()
	if up.StatusCode == http.StatusOK {
		t.Error("upgrade with zero points succeeded")
	}

	goldResp, err := http.Get(ts.URL + "/api/gold")
	if err != nil {
		t.Fatal(err)
	}
	var gold struct {
		Entries []sqlite.GoldEntry `json:"entries"`
	}
	decode(t, goldResp, &gold)
	// No battles claimed gold yet; the ledger may be empty but must decode.
}

func TestBuyItemInsufficientGold(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp := postJSON(t, ts.URL+"/api/shop/buy", map[string]string{"item_id": domain.ItemRebirthPotion})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("buy status = %d, want 409", resp.StatusCode)
	}
}

func TestAchievements(t *testing.T) {
	_, ts := testServer(t)
	onboard(t, ts)

	resp, err := http.Get(ts.URL + "/api/achievements")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Achievements []struct {
			ID       string `json:"id"`
			Unlocked bool   `json:"unlocked"`
		} `json:"achievements"`
	}
	decode(t, resp, &body)
	if len(body.Achievements) == 0 {
		t.Fatal("no achievements listed")
	}

	// Equipping a locked achievement conflicts.
	eq := postJSON(t, ts.URL+"/api/achievements/"+body.Achievements[0].ID+"/equip",
		map[string]bool{"equipped": true})
	eq.Body.Close()
	if eq.StatusCode != http.StatusConflict {
		t.Errorf("equip locked status = %d, want 409", eq.StatusCode)
	}
}
