package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Got-Content-Type", r.Header.Get("Content-Type"))
		w.Header().Set("X-Got-Trace", r.Header.Get("X-Trace"))
		w.Header().Set("X-Got-User-Agent", r.Header.Get("User-Agent"))
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func transports(t *testing.T) map[string]Transport {
	t.Helper()
	a, err := New(Config{Name: "net"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	r, err := NewResty(Config{Name: "resty"})
	if err != nil {
		t.Fatalf("NewResty() error = %v", err)
	}
	return map[string]Transport{"net/http": a, "resty": r}
}

func TestTransport_SendLoad(t *testing.T) {
	srv := newEchoServer(t)
	for name, tr := range transports(t) {
		t.Run(name, func(t *testing.T) {
			out := tr.Send(context.Background(), &Request{
				Method:      http.MethodPost,
				URL:         srv.URL + "/users",
				Headers:     map[string]string{"X-Trace": "abc"},
				ContentType: "application/json",
				Body:        []byte(`{"a":1}`),
			})
			if out.Event != EventLoad {
				t.Fatalf("event = %v, err = %v", out.Event, out.Err)
			}
			if out.StatusCode != 200 || out.StatusText != "OK" {
				t.Errorf("status = %d %q", out.StatusCode, out.StatusText)
			}
			body, ok := out.PayloadBytes()
			if !ok || string(body) != `{"a":1}` {
				t.Errorf("payload = %q", body)
			}
			for _, want := range []string{
				"X-Method: POST\r\n",
				"X-Got-Content-Type: application/json\r\n",
				"X-Got-Trace: abc\r\n",
			} {
				if !strings.Contains(out.RawHeaders, want) {
					t.Errorf("raw headers missing %q:\n%s", want, out.RawHeaders)
				}
			}
			if !strings.Contains(out.RawHeaders, "X-Got-User-Agent: neysla/") {
				t.Errorf("default user agent not sent:\n%s", out.RawHeaders)
			}
		})
	}
}

func TestTransport_CustomHeaderOverridesContentType(t *testing.T) {
	srv := newEchoServer(t)
	for name, tr := range transports(t) {
		t.Run(name, func(t *testing.T) {
			out := tr.Send(context.Background(), &Request{
				Method:      http.MethodPut,
				URL:         srv.URL,
				Headers:     map[string]string{"Content-Type": "text/csv"},
				ContentType: "application/x-www-form-urlencoded; charset=UTF-8",
				Body:        []byte("a,b"),
			})
			if !strings.Contains(out.RawHeaders, "X-Got-Content-Type: text/csv\r\n") {
				t.Errorf("custom Content-Type did not win:\n%s", out.RawHeaders)
			}
		})
	}
}

func TestTransport_ErrorStatusIsStillLoad(t *testing.T) {
	srv := newEchoServer(t)
	for name, tr := range transports(t) {
		t.Run(name, func(t *testing.T) {
			out := tr.Send(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL + "/missing"})
			if out.Event != EventLoad || out.StatusCode != 404 {
				t.Fatalf("unexpected outcome %+v", out)
			}
			if out.StatusText != "Not Found" {
				t.Errorf("status text = %q", out.StatusText)
			}
			if ClassifyOutcome(out) == nil {
				t.Error("404 should classify as a failure")
			}
		})
	}
}

func TestTransport_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	for name, tr := range transports(t) {
		t.Run(name, func(t *testing.T) {
			out := tr.Send(context.Background(), &Request{Method: http.MethodGet, URL: url})
			if out.Event != EventError {
				t.Fatalf("event = %v, want error", out.Event)
			}
			if out.StatusCode != 0 || out.Err == nil {
				t.Errorf("unexpected outcome %+v", out)
			}
		})
	}
}

func TestTransport_Abort(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	for name, tr := range transports(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(20 * time.Millisecond)
				cancel()
			}()
			out := tr.Send(ctx, &Request{Method: http.MethodGet, URL: srv.URL})
			if out.Event != EventAbort {
				t.Fatalf("event = %v, want abort (err=%v)", out.Event, out.Err)
			}
		})
	}
}

func TestTransport_Progress(t *testing.T) {
	payload := strings.Repeat("x", 64*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, payload)
	}))
	defer srv.Close()

	for name, tr := range transports(t) {
		t.Run(name, func(t *testing.T) {
			var mu sync.Mutex
			var last Progress
			calls := 0
			out := tr.Send(context.Background(), &Request{
				Method: http.MethodGet,
				URL:    srv.URL,
				Progress: func(p Progress) {
					mu.Lock()
					defer mu.Unlock()
					calls++
					last = p
				},
			})
			if out.Event != EventLoad {
				t.Fatalf("event = %v", out.Event)
			}
			mu.Lock()
			defer mu.Unlock()
			if calls == 0 {
				t.Fatal("progress was never reported")
			}
			if last.Loaded != int64(len(payload)) {
				t.Errorf("loaded = %d, want %d", last.Loaded, len(payload))
			}
			if last.LengthComputable && last.Total != int64(len(payload)) {
				t.Errorf("total = %d, want %d", last.Total, len(payload))
			}
		})
	}
}

func TestTransport_AuthApplied(t *testing.T) {
	var mu sync.Mutex
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = r.Header.Get("Authorization")
		mu.Unlock()
	}))
	defer srv.Close()

	for _, kind := range []string{TransportNetHTTP, TransportResty} {
		t.Run(kind, func(t *testing.T) {
			tr, err := NewTransport(Config{Transport: kind, Auth: BearerAuth("tok")})
			if err != nil {
				t.Fatalf("NewTransport() error = %v", err)
			}
			tr.Send(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
			mu.Lock()
			defer mu.Unlock()
			if got != "Bearer tok" {
				t.Errorf("Authorization = %q", got)
			}
		})
	}
}

func TestTransportFunc(t *testing.T) {
	var f Transport = TransportFunc(func(_ context.Context, req *Request) *Outcome {
		return &Outcome{Event: EventLoad, StatusCode: 201, Payload: req.URL}
	})
	out := f.Send(context.Background(), &Request{URL: "u"})
	if out.StatusCode != 201 || out.Payload != "u" {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func TestRawHeaderBlock(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Add("Set-Cookie", "a=1")
	h.Add("Set-Cookie", "b=2")
	want := "Content-Type: application/json\r\nSet-Cookie: a=1, b=2\r\n"
	if got := RawHeaderBlock(h); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := RawHeaderBlock(nil); got != "" {
		t.Errorf("expected empty block, got %q", got)
	}
}

func TestEvent_String(t *testing.T) {
	if EventLoad.String() != "load" || EventError.String() != "error" || EventAbort.String() != "abort" {
		t.Error("unexpected event names")
	}
	if Event(9).String() != "event(9)" {
		t.Errorf("got %q", Event(9).String())
	}
}
