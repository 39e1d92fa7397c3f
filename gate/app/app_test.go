package app

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"tingtrainer/common/config"
	"tingtrainer/common/http"
	"tingtrainer/core/infrastructure/persistence"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newGate(t *testing.T) *http.HttpServer {
	t.Helper()
	conf := &config.Config{
		Log:        config.LogConf{Level: "test"},
		JwtConf:    config.JwtConf{Secret: "test-secret", Expire: 3600},
		StatsConf:  config.StatsConf{Driver: "file", Path: filepath.Join(t.TempDir(), "stats.csv")},
		QuizConf:   config.QuizConf{TTL: time.Minute, MaxCost: 100, Seed: 5},
		EngineConf: config.EngineConf{AgariCacheSize: 4096},
	}
	stats, err := persistence.NewStatsRepository(context.Background(), conf)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	server, cleanup, err := NewServer(conf, stats)
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	t.Cleanup(cleanup)
	return server
}

func call(t *testing.T, s *http.HttpServer, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.GetEngine().ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func decode(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode data %s: %v", raw, err)
	}
}

func TestGate_Ping(t *testing.T) {
	s := newGate(t)
	if code, env := call(t, s, nethttp.MethodGet, "/ping", "", nil); code != 200 || env.Code != http.CodeSuccess {
		t.Fatalf("ping: %d %+v", code, env)
	}
}

func TestGate_Analysis(t *testing.T) {
	s := newGate(t)

	code, env := call(t, s, nethttp.MethodPost, "/api/v1/analysis/win", "", map[string]string{
		"tiles": "1w 1w 1w 2w 2w 2w 3w 3w 3w 4w 4w 4w 5w 5w",
	})
	var win struct {
		Win    bool     `json:"win"`
		Groups []string `json:"groups"`
	}
	decode(t, env.Data, &win)
	if code != 200 || !win.Win || len(win.Groups) != 5 {
		t.Fatalf("win: %d %+v", code, win)
	}

	_, env = call(t, s, nethttp.MethodPost, "/api/v1/analysis/waits", "", map[string]string{
		"tiles": "1w 2w 3w 4w 5w 6w 7w 8w 9w 1t 1t 1t 5t",
		"rule":  "hongzhong",
	})
	var waits struct {
		Ukeire int `json:"ukeire"`
		Waits  []struct {
			Tile string `json:"tile"`
		} `json:"waits"`
	}
	decode(t, env.Data, &waits)
	if waits.Ukeire != 7 || len(waits.Waits) != 2 || waits.Waits[1].Tile != "红中" {
		t.Fatalf("waits: %+v", waits)
	}

	_, env = call(t, s, nethttp.MethodPost, "/api/v1/analysis/discards", "", map[string]string{
		"tiles": "1w 2w 3w 4w 5w 6w 7w 8w 9w 1t 1t 1t 5t 5b",
	})
	var discards struct {
		Max  int `json:"max"`
		Best []struct {
			Discard string `json:"discard"`
		} `json:"best"`
	}
	decode(t, env.Data, &discards)
	if discards.Max != 3 || len(discards.Best) != 2 || discards.Best[0].Discard != "5条" {
		t.Fatalf("discards: %+v", discards)
	}
}

func TestGate_AnalysisRejectsBadInput(t *testing.T) {
	s := newGate(t)
	for _, body := range []map[string]string{
		{"tiles": "1w 2w zz"},
		{"tiles": "1w 2w 3w"},
		{"tiles": "1w 1w 1w 1w 1w 2w 3w 4w 5w 6w 7w 8w 9w 9w"},
		{"tiles": "1w 1w 1w 2w 2w 2w 3w 3w 3w 4w 4w 4w 5w 5w", "rule": "riichi"},
		{},
	} {
		code, env := call(t, s, nethttp.MethodPost, "/api/v1/analysis/win", "", body)
		if code != 400 || env.Code != http.CodeInvalidParam {
			t.Fatalf("%v: expected 400/%d, got %d/%d", body, http.CodeInvalidParam, code, env.Code)
		}
	}
}

func TestGate_QuizFlow(t *testing.T) {
	s := newGate(t)

	if code, _ := call(t, s, nethttp.MethodPost, "/api/v1/quiz/uniform", "", nil); code != 401 {
		t.Fatalf("quiz without token: %d", code)
	}

	_, env := call(t, s, nethttp.MethodPost, "/api/v1/auth/login", "", map[string]string{"player": "alice"})
	var login struct {
		Token string `json:"token"`
	}
	decode(t, env.Data, &login)
	if login.Token == "" {
		t.Fatalf("no token: %+v", env)
	}

	code, env := call(t, s, nethttp.MethodPost, "/api/v1/quiz/uniform", login.Token, nil)
	var q struct {
		QuestionID string   `json:"questionID"`
		Hand       []string `json:"hand"`
		Ranks      string   `json:"ranks"`
	}
	decode(t, env.Data, &q)
	if code != 200 || q.QuestionID == "" || len(q.Hand) != 13 || len(q.Ranks) != 13 {
		t.Fatalf("deal: %d %+v", code, q)
	}

	_, env = call(t, s, nethttp.MethodGet, "/api/v1/quiz/"+q.QuestionID+"/hint", login.Token, nil)
	var hint struct {
		Hints []string `json:"hints"`
	}
	decode(t, env.Data, &hint)
	if len(hint.Hints) == 0 {
		t.Fatalf("expected hints for a uniform question")
	}

	code, _ = call(t, s, nethttp.MethodPost, "/api/v1/quiz/answer", login.Token, map[string]string{"questionID": q.QuestionID, "answer": "xyz"})
	if code != 400 {
		t.Fatalf("bad answer: %d", code)
	}

	code, env = call(t, s, nethttp.MethodPost, "/api/v1/quiz/answer", login.Token, map[string]string{"questionID": q.QuestionID, "answer": "123456789"})
	var ans struct {
		Session struct {
			Total int `json:"total"`
		} `json:"session"`
	}
	decode(t, env.Data, &ans)
	if code != 200 || ans.Session.Total != 1 {
		t.Fatalf("answer: %d %+v", code, ans)
	}

	code, env = call(t, s, nethttp.MethodPost, "/api/v1/quiz/answer", login.Token, map[string]string{"questionID": q.QuestionID, "answer": "1"})
	if code != 404 || env.Code != http.CodeNotFound {
		t.Fatalf("answered question should be gone: %d %+v", code, env)
	}

	_, env = call(t, s, nethttp.MethodGet, "/api/v1/stats?mode=uniform", login.Token, nil)
	var sum struct {
		Total int `json:"total"`
	}
	decode(t, env.Data, &sum)
	if sum.Total != 1 {
		t.Fatalf("stats: %+v", env)
	}

	if code, _ := call(t, s, nethttp.MethodPost, "/api/v1/quiz/riichi", login.Token, nil); code != 400 {
		t.Fatalf("unknown mode: %d", code)
	}
}
