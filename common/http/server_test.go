package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tingtrainer/common/jwts"
)

func newTestServer() *HttpServer {
	s := NewHttpServer(WithMode("test"))
	s.GET("/ok", func(c *Context) error {
		c.Success(map[string]string{"hello": "world"})
		return nil
	})
	s.GET("/bad", func(c *Context) error {
		return BadRequestError("bad tiles", errors.New("unknown tile \"x\""))
	})
	s.GET("/boom", func(c *Context) error {
		return errors.New("boom")
	})
	g := s.Group("/private", AuthMiddleware("secret"))
	g.GET("/me", func(c *Context) error {
		c.Success(map[string]string{"player": c.Player()})
		return nil
	})
	return s
}

func do(t *testing.T, s *HttpServer, req *http.Request) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	s.GetEngine().ServeHTTP(w, req)
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestHandlerErrorsMapToCodes(t *testing.T) {
	s := newTestServer()

	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK || resp.Code != CodeSuccess {
		t.Fatalf("ok: status %d code %d", w.Code, resp.Code)
	}

	w, resp = do(t, s, httptest.NewRequest(http.MethodGet, "/bad", nil))
	if w.Code != http.StatusBadRequest || resp.Code != CodeInvalidParam {
		t.Fatalf("bad: status %d code %d", w.Code, resp.Code)
	}
	if !strings.Contains(resp.Message, "bad tiles") {
		t.Fatalf("bad: message %q", resp.Message)
	}

	w, resp = do(t, s, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError || resp.Code != CodeServerError {
		t.Fatalf("boom: status %d code %d", w.Code, resp.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer()

	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/private/me", nil))
	if w.Code != http.StatusUnauthorized || resp.Code != CodeUnauthorized {
		t.Fatalf("missing token: status %d code %d", w.Code, resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/private/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	if w, _ := do(t, s, req); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status %d", w.Code)
	}

	token, err := jwts.GetToken(jwts.NewClaims("bob", time.Hour), "secret")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/private/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, resp = do(t, s, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status %d body %s", w.Code, w.Body.String())
	}
	data, _ := resp.Data.(map[string]interface{})
	if data["player"] != "bob" {
		t.Fatalf("player not propagated: %v", resp.Data)
	}
}
