package security

import (
	"crypto/tls"
	"io"
	"net/http"
	"testing"

	"github.com/kbukum/neysla/security/tlstest"
)

func TestTLSConfig_Build_Disabled(t *testing.T) {
	for name, cfg := range map[string]*TLSConfig{"nil": nil, "zero": {}} {
		t.Run(name, func(t *testing.T) {
			result, err := cfg.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != nil {
				t.Fatal("expected nil tls.Config")
			}
		})
	}
}

func TestTLSConfig_Build_MinVersion(t *testing.T) {
	tests := []struct {
		version string
		want    uint16
	}{
		{"", tls.VersionTLS12},
		{TLSVersion12, tls.VersionTLS12},
		{TLSVersion13, tls.VersionTLS13},
	}
	for _, tt := range tests {
		t.Run("v"+tt.version, func(t *testing.T) {
			result, err := (&TLSConfig{SkipVerify: true, MinVersion: tt.version}).Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.MinVersion != tt.want {
				t.Errorf("MinVersion = %d, want %d", result.MinVersion, tt.want)
			}
			if !result.InsecureSkipVerify {
				t.Error("expected InsecureSkipVerify")
			}
		})
	}
}

func TestTLSConfig_Build_UnknownVersion(t *testing.T) {
	if _, err := (&TLSConfig{MinVersion: "1.0"}).Build(); err == nil {
		t.Fatal("expected error for min_version 1.0")
	}
}

func TestTLSConfig_Build_MissingFiles(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TLSConfig
	}{
		{"ca", &TLSConfig{CAFile: "/nonexistent/ca.pem"}},
		{"client cert", &TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}},
		{"invalid pem", &TLSConfig{CAFile: tlstest.WriteInvalidPEM(t, "bad-ca.pem")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		wantErr bool
	}{
		{"nil", nil, false},
		{"pair", &TLSConfig{CertFile: "cert.pem", KeyFile: "key.pem"}, false},
		{"cert only", &TLSConfig{CertFile: "cert.pem"}, true},
		{"key only", &TLSConfig{KeyFile: "key.pem"}, true},
		{"bad version", &TLSConfig{MinVersion: "tls1.3"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTLSConfig_IsEnabled(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TLSConfig
		enabled bool
	}{
		{"nil", nil, false},
		{"zero", &TLSConfig{}, false},
		{"skip_verify", &TLSConfig{SkipVerify: true}, true},
		{"ca_file", &TLSConfig{CAFile: "ca.pem"}, true},
		{"cert_file", &TLSConfig{CertFile: "cert.pem"}, true},
		{"server_name", &TLSConfig{ServerName: "example.com"}, true},
		{"min_version", &TLSConfig{MinVersion: TLSVersion13}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsEnabled(); got != tt.enabled {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}

func TestTLSConfig_Build_FullConfig(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	cfg := &TLSConfig{
		CAFile:     certs.CAFile,
		CertFile:   certs.CertFile,
		KeyFile:    certs.KeyFile,
		ServerName: "localhost",
		MinVersion: TLSVersion13,
	}
	result, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RootCAs == nil {
		t.Error("expected RootCAs to be set")
	}
	if len(result.Certificates) != 1 {
		t.Errorf("expected 1 client certificate, got %d", len(result.Certificates))
	}
	if result.ServerName != "localhost" {
		t.Errorf("ServerName = %s, want localhost", result.ServerName)
	}
}

func TestTLSConfig_Build_Handshake(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)
	srv := tlstest.NewServer(t, certs, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))

	tlsCfg, err := (&TLSConfig{CAFile: certs.CAFile}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: tlsCfg}}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET over TLS: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
}
