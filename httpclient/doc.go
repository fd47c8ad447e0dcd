// Package httpclient is the transport layer underneath neysla resources.
//
// A Transport receives a fully assembled Request and reports exactly one
// terminal Outcome: a load (the server answered, whatever the status), an
// error (the exchange failed) or an abort (the context was cancelled).
// Progress notifications are delivered through Request.Progress while the
// response payload is read.
//
// Two implementations are provided:
//
//   - Adapter: net/http, with TLS and default authentication
//   - RestyTransport: go-resty/resty
//
// # Basic Usage
//
//	t, _ := httpclient.New(httpclient.Config{
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	out := t.Send(ctx, &httpclient.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://api.example.com/users/123",
//	})
//	if err := httpclient.ClassifyOutcome(out); err != nil {
//	    // abort, network failure or non-2xx status
//	}
package httpclient
