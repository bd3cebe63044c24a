package service

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SlugTimestampLayout is the 19-character date-time appended to a slug that
// collided: second precision, no fraction, no zone.
const SlugTimestampLayout = "2006-01-02 15:04:05"

// fallbackSlug is used when a title contains nothing that survives slugification.
const fallbackSlug = "post"

// Slugify turns s into a lowercase ASCII slug: accents are decomposed and
// dropped, anything other than letters, digits, whitespace and hyphens is
// removed, and runs of whitespace or hyphens become a single hyphen.
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingDash := false
	for _, r := range norm.NFKD.String(s) {
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return b.String()
}

// CandidateSlug is the first slug tried for a new post with the given title.
func CandidateSlug(title string) string {
	if slug := Slugify(title); slug != "" {
		return slug
	}
	return fallbackSlug
}

// TimestampedSlug disambiguates slug with the post's creation time,
// e.g. "hello-world" -> "hello-world-2024-05-01-101530".
func TimestampedSlug(slug string, createdAt time.Time) string {
	return Slugify(slug + " " + createdAt.Format(SlugTimestampLayout))
}
