package resource

import (
	"context"
	"reflect"
	"testing"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/logger"
	"github.com/kbukum/neysla/testutil"
)

func TestNewCatalog(t *testing.T) {
	stub := testutil.NewStubTransport()
	cat, err := NewCatalog(CatalogConfig{
		BaseURL: "https://api.example.com/",
		Resources: map[string]Descriptor{
			"users":    {Segments: []string{"users"}},
			"external": {URL: "http://other.example.com/v2/", Segments: []string{"things"}},
			"posts":    {Name: "blog-posts", URL: "v1/", Segments: []string{"posts"}},
		},
	}, stub, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if got := cat.Names(); !reflect.DeepEqual(got, []string{"external", "posts", "users"}) {
		t.Errorf("Names() = %v", got)
	}
	if cat.Len() != 3 {
		t.Errorf("Len() = %d", cat.Len())
	}

	tests := []struct {
		key      string
		wantName string
		wantURL  string
	}{
		{"users", "users", "https://api.example.com/users"},
		{"external", "external", "http://other.example.com/v2/things"},
		{"posts", "blog-posts", "https://api.example.com/v1/posts"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r, err := cat.Resource(tt.key)
			if err != nil {
				t.Fatalf("Resource: %v", err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", r.Name(), tt.wantName)
			}
			c, err := r.Get(context.Background())
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			_, _ = wait(t, c)
			reqs := stub.Requests()
			if got := reqs[len(reqs)-1].URL; got != tt.wantURL {
				t.Errorf("url = %q, want %q", got, tt.wantURL)
			}
		})
	}
}

func TestCatalog_UnknownResource(t *testing.T) {
	cat, err := NewCatalog(CatalogConfig{}, testutil.NewStubTransport())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := cat.Resource("missing"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestNewCatalog_InvalidDescriptor(t *testing.T) {
	_, err := NewCatalog(CatalogConfig{
		Resources: map[string]Descriptor{"broken": {}},
	}, testutil.NewStubTransport())
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidConfig {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
	if appErr.Details["resource"] != "broken" {
		t.Errorf("details = %v", appErr.Details)
	}
}
