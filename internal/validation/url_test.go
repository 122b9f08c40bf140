package validation

import (
	"strings"
	"testing"
)

func TestNewAPIURLValidator(t *testing.T) {
	v := NewAPIURLValidator()
	if v == nil {
		t.Fatal("NewAPIURLValidator returned nil")
	}
	if v.AllowLocalhost {
		t.Error("Expected AllowLocalhost to be false for security")
	}
	if v.AllowPrivateIPs {
		t.Error("Expected AllowPrivateIPs to be false for security")
	}
	if v.MaxLength != 2048 {
		t.Errorf("Expected MaxLength to be 2048, got %d", v.MaxLength)
	}
}

func TestNewPermissiveAPIURLValidator(t *testing.T) {
	v := NewPermissiveAPIURLValidator()
	if !v.AllowLocalhost {
		t.Error("Expected AllowLocalhost to be true for permissive mode")
	}
	if !v.AllowPrivateIPs {
		t.Error("Expected AllowPrivateIPs to be true for permissive mode")
	}
}

func TestValidateAndNormalize(t *testing.T) {
	v := NewAPIURLValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
		errorMsg    string
	}{
		{name: "https URL unchanged", input: "https://webhook.brieflabs.dev", expected: "https://webhook.brieflabs.dev"},
		{name: "scheme added", input: "webhook.brieflabs.dev", expected: "https://webhook.brieflabs.dev"},
		{name: "trailing slash trimmed", input: "https://api.host.dev/", expected: "https://api.host.dev"},
		{name: "trailing path slash trimmed", input: "https://api.host.dev/base/", expected: "https://api.host.dev/base"},
		{name: "surrounding whitespace", input: "  https://api.host.dev  ", expected: "https://api.host.dev"},
		{name: "empty", input: "", shouldError: true, errorMsg: "cannot be empty"},
		{name: "invalid characters", input: "https://api.host.dev/<script>", shouldError: true, errorMsg: "invalid characters"},
		{name: "ftp scheme", input: "ftp://api.host.dev", shouldError: true, errorMsg: "http or https"},
		{name: "localhost blocked", input: "http://localhost:8080", shouldError: true, errorMsg: "localhost"},
		{name: "private IP blocked", input: "http://192.168.1.10", shouldError: true, errorMsg: "private IP"},
		{name: "loopback blocked", input: "http://127.0.0.1:3000", shouldError: true, errorMsg: "localhost"},
		{name: "traversal blocked", input: "https://api.host.dev/../etc", shouldError: true, errorMsg: "traversal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.input, got)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPermissiveAllowsLocalDevelopment(t *testing.T) {
	v := NewPermissiveAPIURLValidator()

	for _, input := range []string{
		"http://localhost:8080",
		"http://127.0.0.1:3000",
		"http://192.168.1.10",
	} {
		if _, err := v.ValidateAndNormalize(input); err != nil {
			t.Errorf("ValidateAndNormalize(%q) = %v, want nil", input, err)
		}
	}
}

func TestMaxLengthEnforced(t *testing.T) {
	v := NewAPIURLValidator()
	long := "https://api.host.dev/" + strings.Repeat("a", 3000)
	if _, err := v.ValidateAndNormalize(long); err == nil {
		t.Error("expected error for overlong URL")
	}
}
