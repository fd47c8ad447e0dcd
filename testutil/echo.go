package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/neysla/component"
)

// Routes answered by EchoServer before falling back to the echo handler.
const (
	// StatusPath replies with the status code in the last segment, e.g. /status/404.
	StatusPath = "/status/:code"
	// SlowPath holds the response until the client goes away or SlowTimeout passes.
	SlowPath = "/slow"
	// SlowTimeout bounds how long SlowPath holds a request.
	SlowTimeout = 5 * time.Second
)

// RecordedRequest is a request as received by EchoServer.
type RecordedRequest struct {
	ID       string
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Echo is the JSON document EchoServer writes for unrouted requests.
type Echo struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Query       map[string]string `json:"query,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	ContentType string            `json:"contentType,omitempty"`
	Body        string            `json:"body,omitempty"`
}

// EchoServer is a gin HTTP server for integration tests. Every request is
// recorded; requests without a registered route are echoed back as JSON.
type EchoServer struct {
	name   string
	engine *gin.Engine
	srv    *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

var _ TestComponent = (*EchoServer)(nil)

// NewEchoServer builds the server. Call Start (or THelper.Setup) before use.
func NewEchoServer() *EchoServer {
	gin.SetMode(gin.TestMode)
	s := &EchoServer{name: "echo-server", engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestID(), s.record())

	s.engine.Any(StatusPath, func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil || code < 100 || code > 599 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status code"})
			return
		}
		if code == http.StatusNoContent || code == http.StatusNotModified {
			c.Status(code)
			return
		}
		c.JSON(code, gin.H{"status": code})
	})
	s.engine.Any(SlowPath, func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
		case <-time.After(SlowTimeout):
			c.JSON(http.StatusOK, gin.H{"slow": true})
		}
	})
	s.engine.NoRoute(echo)
	return s
}

// Handle registers an extra route. Register routes before sending requests.
func (s *EchoServer) Handle(method, path string, h gin.HandlerFunc) {
	s.engine.Handle(method, path, h)
}

// URL returns the server base URL without a trailing slash.
func (s *EchoServer) URL() string {
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// Requests returns a copy of the recorded requests in arrival order.
func (s *EchoServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent recorded request.
func (s *EchoServer) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Name implements component.Component.
func (s *EchoServer) Name() string { return s.name }

// Start begins serving on a loopback port.
func (s *EchoServer) Start(_ context.Context) error {
	if s.srv == nil {
		s.srv = httptest.NewServer(s.engine)
	}
	return nil
}

// Stop closes the listener and blocks until in-flight requests finish.
func (s *EchoServer) Stop(_ context.Context) error {
	if s.srv != nil {
		s.srv.Close()
		s.srv = nil
	}
	return nil
}

// Health reports healthy while serving.
func (s *EchoServer) Health(_ context.Context) component.Health {
	if s.srv == nil {
		return component.Health{Name: s.name, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.name, Status: component.StatusHealthy}
}

// Reset forgets recorded requests.
func (s *EchoServer) Reset(_ context.Context) error {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
	return nil
}

func (s *EchoServer) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			ID:       c.GetString("request_id"),
			Method:   c.Request.Method,
			Path:     c.Request.URL.EscapedPath(),
			RawQuery: c.Request.URL.RawQuery,
			Header:   c.Request.Header.Clone(),
			Body:     body,
		})
		s.mu.Unlock()
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func echo(c *gin.Context) {
	body, _ := c.GetRawData()
	e := Echo{
		Method:      c.Request.Method,
		Path:        c.Request.URL.EscapedPath(),
		ContentType: c.ContentType(),
		Body:        string(body),
	}
	if q := c.Request.URL.Query(); len(q) > 0 {
		e.Query = make(map[string]string, len(q))
		for k := range q {
			e.Query[k] = q.Get(k)
		}
	}
	if len(c.Request.Header) > 0 {
		e.Headers = make(map[string]string, len(c.Request.Header))
		for k := range c.Request.Header {
			e.Headers[k] = c.Request.Header.Get(k)
		}
	}
	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, e)
}
