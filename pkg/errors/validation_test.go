package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"empty", "", false},
		{"plain", "service-a", false},
		{"unicode", "nœud №3", false},
		{"spaces", "load balancer", false},
		{"newline", "two\nlines", true},
		{"tab", "a\tb", true},
		{"null byte", "a\x00b", true},
		{"escape sequence", "a\x1bb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateLabelLength(t *testing.T) {
	if err := ValidateLabel(strings.Repeat("x", 256)); err != nil {
		t.Errorf("256-char label rejected: %v", err)
	}
	if err := ValidateLabel(strings.Repeat("x", 257)); err == nil {
		t.Error("257-char label accepted")
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "out/layout.svg", false},
		{"absolute", "/tmp/layout.json", false},
		{"dotted", "../sibling/layout.json", false},
		{"empty", "", true},
		{"null byte", "out\x00.svg", true},
		{"control char", "out\x1b.svg", true},
		{"too long", strings.Repeat("d/", 251) + "f", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://layout.example.com", false},
		{"http", "http://localhost:8080", false},
		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"bare host", "layout.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBrokerURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"nats", "nats://localhost:4222", false},
		{"tls", "tls://broker.example.com:4222", false},
		{"websocket", "wss://broker.example.com", false},
		{"http", "http://localhost:4222", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateBrokerURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateBrokerURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
