package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComponent_Lifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	comp := NewComponent(Config{Name: "test-http"})

	if comp.Transport() != nil {
		t.Error("Transport() should be nil before Start()")
	}

	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if comp.Transport() == nil {
		t.Fatal("Transport() should not be nil after Start()")
	}

	health := comp.Health(context.Background())
	if health.Status != "healthy" {
		t.Errorf("expected healthy, got %s", health.Status)
	}
	if health.Name != "test-http" {
		t.Errorf("expected name test-http, got %s", health.Name)
	}

	out := comp.Transport().Send(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
	if out.Event != EventLoad || out.StatusCode != 200 {
		t.Errorf("unexpected outcome %+v", out)
	}

	if err := comp.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestComponent_StartResty(t *testing.T) {
	comp := NewComponent(Config{Name: "r", Transport: TransportResty})
	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, ok := comp.Transport().(*RestyTransport); !ok {
		t.Errorf("expected *RestyTransport, got %T", comp.Transport())
	}
	_ = comp.Stop(context.Background())
}

func TestComponent_StartInvalidConfig(t *testing.T) {
	comp := NewComponent(Config{Transport: "bogus"})
	if err := comp.Start(context.Background()); err == nil {
		t.Error("expected Start() to fail for an unknown transport")
	}
}

func TestComponent_Name_Default(t *testing.T) {
	comp := NewComponent(Config{})
	if got := comp.Name(); got != "http" {
		t.Errorf("expected default name 'http', got %q", got)
	}
}

func TestComponent_Name_Custom(t *testing.T) {
	comp := NewComponent(Config{Name: "my-api"})
	if got := comp.Name(); got != "my-api" {
		t.Errorf("expected 'my-api', got %q", got)
	}
}

func TestComponent_Describe(t *testing.T) {
	comp := NewComponent(Config{Name: "my-api", Transport: TransportResty})
	desc := comp.Describe()
	if desc.Type != "http-transport" {
		t.Errorf("expected type 'http-transport', got %q", desc.Type)
	}
	if desc.Details != "resty timeout=30s" {
		t.Errorf("unexpected details %q", desc.Details)
	}
}

func TestComponent_Health_Unhealthy_BeforeStart(t *testing.T) {
	comp := NewComponent(Config{})
	health := comp.Health(context.Background())
	if health.Status != "unhealthy" {
		t.Errorf("expected unhealthy before Start(), got %s", health.Status)
	}
}
