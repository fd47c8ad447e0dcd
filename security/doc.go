// Package security holds the TLS settings shared by the net/http and resty
// transports in httpclient.
//
// A zero TLSConfig builds to nil so transports keep Go's defaults:
//
//	http:
//	  tls:
//	    ca_file: /etc/neysla/ca.pem
//	    min_version: "1.3"
package security
