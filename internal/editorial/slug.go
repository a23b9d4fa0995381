package editorial

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"
)

const maxSlugLength = 80

// Slugify lowercases the title, replaces runs of non-alphanumerics with a
// single hyphen, and trims to a bounded length at a hyphen boundary.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		if idx := strings.LastIndex(slug, "-"); idx > maxSlugLength/2 {
			slug = slug[:idx]
		}
	}
	if slug == "" {
		slug = "post"
	}
	return slug
}

// WithRandomSuffix appends a short random numeric suffix, used to resolve slug
// collisions without renaming the original post. Best effort, not guaranteed
// unique; the database uniqueness constraint is the backstop.
func WithRandomSuffix(slug string) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return slug + "-1"
	}
	n := binary.BigEndian.Uint32(buf)%900000 + 100000
	return fmt.Sprintf("%s-%d", slug, n)
}
