package sitemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"bare ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"trailing ampersand", "a&", "a&amp;"},
		{"named entity kept", "a &amp; b", "a &amp; b"},
		{"decimal entity kept", "&#123;", "&#123;"},
		{"hex entity kept", "&#x1F;", "&#x1F;"},
		{"empty entity name", "&;", "&amp;;"},
		{"unterminated entity", "&lt", "&amp;lt"},
		{"markup", `<a href="x">'q'</a>`, "&lt;a href=&quot;x&quot;&gt;&apos;q&apos;&lt;/a&gt;"},
		{"unicode", "Café & Bar", "Café &amp; Bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeXML(tt.in))
		})
	}
}

func TestEscapeXML_IdempotentOnEscapedInput(t *testing.T) {
	for _, in := range []string{
		"&amp;",
		"a &amp; b &lt;c&gt; &quot;d&quot; &apos;e&apos;",
		"&amp;amp;",
	} {
		assert.Equal(t, in, EscapeXML(in), in)
	}
}

func TestEscapeXMLPtr(t *testing.T) {
	assert.Equal(t, "", EscapeXMLPtr(nil))
	s := "a<b"
	assert.Equal(t, "a&lt;b", EscapeXMLPtr(&s))
}

func FuzzEscapeXML(f *testing.F) {
	for _, seed := range []string{"", "a & b", "&amp;", "<&#12;>", "&lt", `"'`} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := EscapeXML(s)
		if twice := EscapeXML(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}
