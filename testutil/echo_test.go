package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/neysla/component"
)

func TestEchoServer_EchoesRequest(t *testing.T) {
	srv := NewEchoServer()
	T(t).Setup(srv)

	req, _ := http.NewRequest(http.MethodPost, srv.URL()+"/api/users/7?x=1", strings.NewReader(`{"n":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Trace", "abc")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id response header")
	}
	var e Echo
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Method != http.MethodPost || e.Path != "/api/users/7" {
		t.Errorf("echo = %s %s", e.Method, e.Path)
	}
	if e.Query["x"] != "1" || e.Headers["X-Trace"] != "abc" || e.Body != `{"n":1}` {
		t.Errorf("unexpected echo: %+v", e)
	}

	last, ok := srv.LastRequest()
	if !ok {
		t.Fatal("expected a recorded request")
	}
	if string(last.Body) != `{"n":1}` || last.RawQuery != "x=1" {
		t.Errorf("recorded = %+v", last)
	}
}

func TestEchoServer_StatusRoute(t *testing.T) {
	srv := NewEchoServer()
	T(t).Setup(srv)

	for _, code := range []int{201, 404, 500} {
		resp, err := http.Get(srv.URL() + "/status/" + strconv.Itoa(code))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != code {
			t.Errorf("status = %d, want %d", resp.StatusCode, code)
		}
	}
}

func TestEchoServer_HandleAndReset(t *testing.T) {
	srv := NewEchoServer()
	srv.Handle(http.MethodGet, "/teapot", func(c *gin.Context) {
		c.String(http.StatusTeapot, "short and stout")
	})
	T(t).Setup(srv)

	resp, err := http.Get(srv.URL() + "/teapot")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("status = %d, want 418", resp.StatusCode)
	}
	if n := len(srv.Requests()); n != 1 {
		t.Fatalf("recorded %d requests, want 1", n)
	}

	T(t).Reset(srv)
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("recorded %d requests after reset, want 0", n)
	}
}

func TestEchoServer_Health(t *testing.T) {
	srv := NewEchoServer()
	ctx := context.Background()
	if h := srv.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("before start: %s", h.Status)
	}
	cleanup, err := Setup(ctx, srv)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if h := srv.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("after start: %s", h.Status)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if srv.URL() != "" {
		t.Error("expected empty URL after stop")
	}
}
