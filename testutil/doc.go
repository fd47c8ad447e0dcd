// Package testutil provides test doubles for code built on httpclient.
//
// EchoServer is a gin-backed HTTP server that records every request and
// answers with a JSON echo of it. StubTransport is an httpclient.Transport
// that replays scripted Outcomes without touching the network.
//
//	func TestResource(t *testing.T) {
//	    srv := testutil.NewEchoServer()
//	    testutil.T(t).Setup(srv)
//	    // point a descriptor at srv.URL() ...
//	}
//
// Both implement TestComponent so they can be started, stopped and reset
// through THelper or a component.Registry.
package testutil
