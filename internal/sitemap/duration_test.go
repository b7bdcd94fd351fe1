package sitemap

import (
	"math"
	"strconv"
	"testing"
)

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{"0", 0},
		{" 45 ", 45},
		{"1:30", 90},
		{"01:30", 90},
		{"01:02:03", 3723},
		{"", DefaultDurationSeconds},
		{"abc", DefaultDurationSeconds},
		{"1:xx", DefaultDurationSeconds},
		{"1:2:3:4", DefaultDurationSeconds},
		{"-5", DefaultDurationSeconds},
		{"1:-5", DefaultDurationSeconds},
		{":", DefaultDurationSeconds},
		{strconv.Itoa(math.MaxInt), math.MaxInt},
		{strconv.Itoa(math.MaxInt) + ":0", DefaultDurationSeconds},
		{"9223372036854775807:59", DefaultDurationSeconds},
		{"153722867280912930:0:0", DefaultDurationSeconds},
		{"99999999999999999999", DefaultDurationSeconds},
	}
	for _, tt := range tests {
		got := ParseDurationSeconds(tt.in)
		if got < 0 {
			t.Errorf("ParseDurationSeconds(%q) = %d, want non-negative", tt.in, got)
		}
		if got != tt.want {
			t.Errorf("ParseDurationSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if DefaultDurationSeconds != 26 {
		t.Fatalf("DefaultDurationSeconds = %d", DefaultDurationSeconds)
	}
}
