package security

import "testing"

func TestValidateURL_AcceptsPublicHTTPS(t *testing.T) {
	g := NewOutboundGuard()

	urls := []string{
		"https://docs.example.com/inventory/pub?output=csv",
		"http://cdn.example.com/storage/v1/object/list/autos",
	}
	for _, u := range urls {
		if err := g.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
}

func TestValidateURL_RejectsBadInput(t *testing.T) {
	g := NewOutboundGuard()

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no host", "https://"},
		{"ftp scheme", "ftp://example.com/feed.csv"},
		{"file scheme", "file:///etc/passwd"},
		{"localhost", "http://localhost:8080/feed.csv"},
		{"loopback IP", "http://127.0.0.1/feed.csv"},
		{"private IP", "http://192.168.1.10/feed.csv"},
		{"metadata IP", "http://169.254.169.254/latest/meta-data"},
		{"ipv6 loopback", "http://[::1]/feed.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.ValidateURL(tt.url); err == nil {
				t.Errorf("ValidateURL(%q) = nil, want error", tt.url)
			}
		})
	}
}

func TestNewSafeClient_ReturnsClient(t *testing.T) {
	g := NewOutboundGuard()

	c := g.NewSafeClient(0)
	if c == nil {
		t.Fatal("expected non-nil client")
	}
}
