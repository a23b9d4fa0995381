package editorial

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rethinking Cache Invalidation", "rethinking-cache-invalidation"},
		{"What's New in Go 1.24?", "what-s-new-in-go-1-24"},
		{"  --- Leading & Trailing ---  ", "leading-trailing"},
		{"ALL CAPS TITLE", "all-caps-title"},
		{"???", "post"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyBounded(t *testing.T) {
	long := strings.Repeat("very-long-title ", 20)
	slug := Slugify(long)
	if len(slug) > maxSlugLength {
		t.Fatalf("slug length %d exceeds %d", len(slug), maxSlugLength)
	}
	if strings.HasSuffix(slug, "-") {
		t.Fatalf("slug has trailing hyphen: %q", slug)
	}
}

func TestWithRandomSuffix(t *testing.T) {
	base := "some-post"
	a := WithRandomSuffix(base)
	b := WithRandomSuffix(base)
	if !strings.HasPrefix(a, base+"-") {
		t.Fatalf("suffix form: %q", a)
	}
	if a == b {
		t.Fatalf("two suffixes collided: %q", a)
	}
}
