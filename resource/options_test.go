package resource

import (
	"reflect"
	"testing"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/httpclient"
)

func TestBuildOverrides_MergesRepeatedOptions(t *testing.T) {
	ov := buildOverrides([]Option{
		WithParams(map[string]any{"a": 1, "b": 2}),
		WithParam("b", 3),
		WithHeader("X-A", "1"),
		WithHeaders(map[string]string{"X-B": "2"}),
		WithBody(map[string]any{"n": 1}),
		WithDelimiters(7, 3),
		WithRequestType(RequestTypeJSON),
		WithResponseType("text"),
		nil,
	})

	if !reflect.DeepEqual(ov.Params, map[string]any{"a": 1, "b": 3}) {
		t.Errorf("params = %v", ov.Params)
	}
	if !reflect.DeepEqual(ov.Headers, map[string]string{"X-A": "1", "X-B": "2"}) {
		t.Errorf("headers = %v", ov.Headers)
	}
	if !reflect.DeepEqual(ov.Delimiters, []any{7, 3}) {
		t.Errorf("delimiters = %v", ov.Delimiters)
	}
	if ov.RequestType != RequestTypeJSON || ov.ResponseType != "text" {
		t.Errorf("types = %q %q", ov.RequestType, ov.ResponseType)
	}
}

func TestWithDelimiters_SpreadsLists(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want []any
	}{
		{"none", nil, nil},
		{"scalars", []any{7, "3"}, []any{7, "3"}},
		{"string slice", []any{[]string{"7", "3"}}, []any{"7", "3"}},
		{"int array", []any{[2]int{7, 3}}, []any{7, 3}},
		{"mixed", []any{"users", []any{7, nil}}, []any{"users", 7, nil}},
		{"bytes stay one value", []any{[]byte("ab")}, []any{"ab"}},
		{"map left for validation", []any{map[string]any{}}, []any{map[string]any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov := buildOverrides([]Option{WithDelimiters(tt.args...)})
			if !reflect.DeepEqual(ov.Delimiters, tt.want) {
				t.Errorf("delimiters = %#v, want %#v", ov.Delimiters, tt.want)
			}
		})
	}
}

func TestWithHeaders_LaterCaseVariantWins(t *testing.T) {
	ov := buildOverrides([]Option{
		WithHeader("x-api-key", "old"),
		WithHeader("X-Api-Key", "new"),
	})
	if !reflect.DeepEqual(ov.Headers, map[string]string{"X-Api-Key": "new"}) {
		t.Errorf("headers = %v", ov.Headers)
	}
}

func TestWithOverrides_KeepsEarlierFields(t *testing.T) {
	ov := buildOverrides([]Option{
		WithRequestType(RequestTypeMultipart),
		WithParam("a", 1),
		WithOverrides(Overrides{Params: map[string]any{"b": 2}}),
	})
	if ov.RequestType != RequestTypeMultipart {
		t.Errorf("request type = %q, want multipart", ov.RequestType)
	}
	if len(ov.Params) != 2 {
		t.Errorf("params = %v", ov.Params)
	}
}

func TestOverrides_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ov      Overrides
		wantErr bool
	}{
		{"empty", Overrides{}, false},
		{"known type", Overrides{RequestType: RequestTypeDefault}, false},
		{"unknown type", Overrides{RequestType: "xml"}, true},
		{"bad header name", Overrides{Headers: map[string]string{"Bad Name": "v"}}, true},
		{"bad header value", Overrides{Headers: map[string]string{"X-A": "line\nbreak"}}, true},
		{"map delimiter", Overrides{Delimiters: []any{map[string]any{}}}, true},
		{"scalar delimiters", Overrides{Delimiters: []any{1, "a", nil, 2.5}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ov.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestParseOverrides(t *testing.T) {
	var seen bool
	progress := func(httpclient.Progress) { seen = true }

	ov, err := ParseOverrides(map[string]any{
		"delimiters":   []any{7, "3"},
		"params":       map[string]any{"page": 2},
		"headers":      map[any]any{"Accept": "application/json"},
		"body":         map[string]string{"n": "1"},
		"requestType":  "json",
		"responseType": "text",
		"progress":     progress,
		"unknown":      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ov.Delimiters, []any{7, "3"}) {
		t.Errorf("delimiters = %v", ov.Delimiters)
	}
	if ov.Params["page"] != 2 || ov.Headers["Accept"] != "application/json" || ov.Body["n"] != "1" {
		t.Errorf("mappings = %v %v %v", ov.Params, ov.Headers, ov.Body)
	}
	if ov.RequestType != RequestTypeJSON || ov.ResponseType != "text" {
		t.Errorf("types = %q %q", ov.RequestType, ov.ResponseType)
	}
	if ov.Progress == nil {
		t.Fatal("expected progress callback")
	}
	ov.Progress(httpclient.Progress{})
	if !seen {
		t.Error("progress callback not wired")
	}
}

func TestParseOverrides_ScalarDelimiter(t *testing.T) {
	ov, err := ParseOverrides(map[string]any{"delimiters": 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ov.Delimiters, []any{42}) {
		t.Errorf("delimiters = %v", ov.Delimiters)
	}
}

func TestParseOverrides_IgnoresWrongOptionalTypes(t *testing.T) {
	ov, err := ParseOverrides(map[string]any{"responseType": 5, "progress": "nope"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ov.ResponseType != "" || ov.Progress != nil {
		t.Errorf("expected defaults, got %+v", ov)
	}
}

func TestParseOverrides_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"delimiters map", map[string]any{"delimiters": map[string]any{"a": 1}}},
		{"params list", map[string]any{"params": []any{1}}},
		{"body string", map[string]any{"body": "x=1"}},
		{"header number", map[string]any{"headers": map[string]any{"X-A": 1}}},
		{"non-string keys", map[string]any{"params": map[any]any{1: "a"}}},
		{"request type number", map[string]any{"requestType": 3}},
		{"request type unknown", map[string]any{"requestType": "xml"}},
		{"nested delimiter", map[string]any{"delimiters": []any{[]any{1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverrides(tt.raw)
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestParseOverrides_Nil(t *testing.T) {
	ov, err := ParseOverrides(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ov, Overrides{}) {
		t.Errorf("expected zero Overrides, got %+v", ov)
	}
}
