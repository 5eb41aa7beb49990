package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Reminder/internal/config"
	"Reminder/internal/repo"
	"Reminder/internal/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewTodoService(repo.NewMemoryTodoRepo(), repo.NewMemoryUserRepo(), nil, zap.NewNop())
	return newRouter(config.Config{}, svc)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: bad response body %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func dataField(t *testing.T, body map[string]any, key string) string {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("no data object in %v", body)
	}
	v, _ := data[key].(string)
	return v
}

func TestRouter_UserFlow(t *testing.T) {
	r := newTestRouter()

	code, body := doJSON(t, r, http.MethodPost, "/api/v1/users", `{"name":"Alice","email":"a@x.com"}`)
	if code != http.StatusCreated {
		t.Fatalf("create user: status %d, body %v", code, body)
	}
	id := dataField(t, body, "id")
	if id == "" {
		t.Fatal("no user id in response")
	}

	t.Run("get by id", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodGet, "/api/v1/users/"+id, "")
		if code != http.StatusOK {
			t.Fatalf("status %d, body %v", code, body)
		}
		if got := dataField(t, body, "email"); got != "a@x.com" {
			t.Errorf("email %q", got)
		}
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		code, _ := doJSON(t, r, http.MethodGet, "/api/v1/users/user-999", "")
		if code != http.StatusNotFound {
			t.Errorf("status %d", code)
		}
	})

	t.Run("bad email is 400", func(t *testing.T) {
		code, _ := doJSON(t, r, http.MethodPost, "/api/v1/users", `{"name":"Bob","email":"nope"}`)
		if code != http.StatusBadRequest {
			t.Errorf("status %d", code)
		}
	})
}

func TestRouter_TodoFlow(t *testing.T) {
	r := newTestRouter()

	_, body := doJSON(t, r, http.MethodPost, "/api/v1/users", `{"name":"Alice","email":"a@x.com"}`)
	alice := dataField(t, body, "id")
	_, body = doJSON(t, r, http.MethodPost, "/api/v1/users", `{"name":"Bob","email":"b@x.com"}`)
	bob := dataField(t, body, "id")

	code, body := doJSON(t, r, http.MethodPost, "/api/v1/todos",
		`{"userId":"`+alice+`","title":"Pay rent","remindAt":"2026-09-02"}`)
	if code != http.StatusCreated {
		t.Fatalf("create todo: status %d, body %v", code, body)
	}
	todoID := dataField(t, body, "id")

	t.Run("unknown owner is 404", func(t *testing.T) {
		code, _ := doJSON(t, r, http.MethodPost, "/api/v1/todos", `{"userId":"user-404","title":"x"}`)
		if code != http.StatusNotFound {
			t.Errorf("status %d", code)
		}
	})

	t.Run("patch with bad status is 400", func(t *testing.T) {
		code, _ := doJSON(t, r, http.MethodPatch, "/api/v1/todos/"+todoID, `{"status":"ARCHIVED"}`)
		if code != http.StatusBadRequest {
			t.Errorf("status %d", code)
		}
	})

	t.Run("complete", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodPost, "/api/v1/todos/"+todoID+"/complete", "")
		if code != http.StatusOK {
			t.Fatalf("status %d, body %v", code, body)
		}
		if got := dataField(t, body, "status"); got != "DONE" {
			t.Errorf("status field %q", got)
		}
	})

	t.Run("share", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodPost, "/api/v1/todos/"+todoID+"/share",
			`{"userIdTarget":"`+bob+`"}`)
		if code != http.StatusCreated {
			t.Fatalf("status %d, body %v", code, body)
		}
		if got := dataField(t, body, "userId"); got != bob {
			t.Errorf("copy owner %q", got)
		}
		if dataField(t, body, "id") == todoID {
			t.Error("copy reused the source id")
		}
	})

	t.Run("delete then read is 404", func(t *testing.T) {
		code, _ := doJSON(t, r, http.MethodDelete, "/api/v1/todos/"+todoID, "")
		if code != http.StatusOK {
			t.Fatalf("delete status %d", code)
		}
		code, _ = doJSON(t, r, http.MethodGet, "/api/v1/todos/"+todoID, "")
		if code != http.StatusNotFound {
			t.Errorf("get after delete status %d", code)
		}
	})

	t.Run("user todo listing", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodGet, "/api/v1/users/"+bob+"/todos", "")
		if code != http.StatusOK {
			t.Fatalf("status %d, body %v", code, body)
		}
		data, _ := body["data"].(map[string]any)
		items, _ := data["items"].([]any)
		if len(items) != 1 {
			t.Errorf("expected 1 shared todo for bob, got %d", len(items))
		}
	})
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter()
	code, body := doJSON(t, r, http.MethodGet, "/health", "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if ok, _ := body["ok"].(bool); !ok {
		t.Errorf("body %v", body)
	}
}
