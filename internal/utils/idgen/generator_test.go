package idgen

import (
	"strings"
	"testing"
)

func TestGenerateSecureID(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		length     int
		wantErr    bool
		wantPrefix string
	}{
		{
			name:       "generate request ID",
			prefix:     "req",
			length:     16,
			wantErr:    false,
			wantPrefix: "req_",
		},
		{
			name:       "generate gift ID",
			prefix:     "gift",
			length:     16,
			wantErr:    false,
			wantPrefix: "gift_",
		},
		{
			name:       "generate short ID",
			prefix:     "test",
			length:     8,
			wantErr:    false,
			wantPrefix: "test_",
		},
		{
			name:       "generate long ID",
			prefix:     "test",
			length:     32,
			wantErr:    false,
			wantPrefix: "test_",
		},
		{
			name:    "zero length rejected",
			prefix:  "test",
			length:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSecureID(tt.prefix, tt.length)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateSecureID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("GenerateSecureID() = %q, want prefix %q", got, tt.wantPrefix)
			}
			if len(got) != len(tt.wantPrefix)+tt.length {
				t.Errorf("GenerateSecureID() length = %d, want %d", len(got), len(tt.wantPrefix)+tt.length)
			}
		})
	}
}

func TestGenerateSecureIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateSecureID("req", 16)
		if err != nil {
			t.Fatalf("GenerateSecureID() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
