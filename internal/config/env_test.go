package config

import (
	"testing"
	"time"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		envSet       bool
		want         string
	}{
		{
			name:         "environment variable set",
			key:          "TEST_STRING",
			defaultValue: "default",
			envValue:     "from-env",
			envSet:       true,
			want:         "from-env",
		},
		{
			name:         "environment variable not set",
			key:          "TEST_STRING_UNSET",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "environment variable empty string",
			key:          "TEST_STRING_EMPTY",
			defaultValue: "default",
			envValue:     "",
			envSet:       true,
			want:         "default",
		},
		{
			name:         "sensitive variable (password)",
			key:          "TEST_PASSWORD",
			defaultValue: "default",
			envValue:     "secret123",
			envSet:       true,
			want:         "secret123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv(tt.key, tt.envValue)
			}
			if got := ParseString(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("ParseString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	t.Setenv("TEST_INT_OK", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	if got := ParseInt("TEST_INT_OK", 1); got != 42 {
		t.Errorf("ParseInt(valid) = %d, want 42", got)
	}
	if got := ParseInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("ParseInt(invalid) = %d, want default 7", got)
	}
	if got := ParseInt("TEST_INT_UNSET", 9); got != 9 {
		t.Errorf("ParseInt(unset) = %d, want default 9", got)
	}
}

func TestParseDuration(t *testing.T) {
	t.Setenv("TEST_DUR_OK", "1500ms")
	t.Setenv("TEST_DUR_BAD", "soon")

	if got := ParseDuration("TEST_DUR_OK", time.Second); got != 1500*time.Millisecond {
		t.Errorf("ParseDuration(valid) = %v", got)
	}
	if got := ParseDuration("TEST_DUR_BAD", time.Second); got != time.Second {
		t.Errorf("ParseDuration(invalid) = %v, want default", got)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := ParseBool("TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("ParseBool(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	if got := ParseFloat("TEST_FLOAT", 1); got != 0.25 {
		t.Errorf("ParseFloat() = %v, want 0.25", got)
	}
}
