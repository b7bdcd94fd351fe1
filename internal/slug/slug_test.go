// SPDX-License-Identifier: MIT

package slug

import (
	"regexp"
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hello World", "hello-world"},
		{"  padded   title  ", "padded-title"},
		{"Café Élan à Paris", "cafe-elan-a-paris"},
		{"Crème brûlée!!!", "creme-brulee"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"already-slugged--twice", "already-slugged-twice"},
		{"snake_case stays", "snake_case-stays"},
		{"Ep. 12 - The End?", "ep-12-the-end"},
		{"日本語タイトル", ""},
		{"日本語 Title 2024", "title-2024"},
		{"-leading and trailing-", "leading-and-trailing"},
		{"a b", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

var slugShape = regexp.MustCompile(`^([a-z0-9_]+(-[a-z0-9_]+)*)?$`)

func FuzzMake(f *testing.F) {
	for _, seed := range []string{
		"", "Hello World", "Ünïcödé", "--x--", "a - b", strings.Repeat("é ", 50), "​", "🎬 Movie",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		got := Make(in)
		if !slugShape.MatchString(got) {
			t.Fatalf("Make(%q) = %q has invalid shape", in, got)
		}
		if Make(got) != got {
			t.Fatalf("Make is not idempotent for %q: %q -> %q", in, got, Make(got))
		}
	})
}
