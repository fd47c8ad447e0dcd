// Package resource turns declarative REST resource descriptions into HTTP
// requests and normalizes the responses.
//
// A Descriptor names the path segments of a resource and its defaults for
// query parameters, headers, body and encodings. Each verb method merges
// per-call Options over those defaults, resolves the path from the segments
// and positional delimiters, encodes the body, and dispatches the request
// through an httpclient.Transport:
//
//	users, err := resource.New(resource.Descriptor{
//	    URL:      "https://api.example.com/",
//	    Segments: []string{"users", "posts"},
//	    Headers:  map[string]string{"Authorization": "Bearer token"},
//	}, transport)
//
//	call, err := users.Get(ctx, resource.WithDelimiters(7, 3))
//	if err != nil {
//	    // configuration error, nothing was sent
//	}
//	env, err := call.Wait(ctx) // GET https://api.example.com/users/7/posts/3
//
// A Call settles exactly once. It resolves when the transport reports a load
// with a status in [1, 300). Any other outcome (status 0, status >= 300,
// a transport error or an abort) rejects it with a *Rejection that carries
// the same Envelope.
//
// Merging is shallow: an override key replaces the default value whole.
package resource
