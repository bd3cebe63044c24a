package service

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"collapse whitespace", "  Go   is\tfun \n", "go-is-fun"},
		{"existing hyphens", "one - two -- three", "one-two-three"},
		{"accents", "Café Crème Brûlée", "cafe-creme-brulee"},
		{"digits", "Top 10 Tips for 2024", "top-10-tips-for-2024"},
		{"symbols dropped not split", "C++ & Go's channels", "c-gos-channels"},
		{"underscores removed", "snake_case title", "snakecase-title"},
		{"leading and trailing hyphens", "--edge--", "edge"},
		{"non latin dropped", "日本語 title", "title"},
		{"only symbols", "!!!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"  Mixed   CASE -- and __ symbols!! ",
		"Ünïcödé Tëxt",
		"already-a-slug",
		"2024-05-01 10:15:30",
		"a",
	}

	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSlugify_OutputAlphabet(t *testing.T) {
	got := Slugify("Wéird @#$ Títle // with ~ every ^ thing 123")
	for _, r := range got {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			t.Fatalf("Slugify produced %q containing %q", got, r)
		}
	}
	if strings.Contains(got, "--") || strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
		t.Errorf("Slugify produced malformed slug %q", got)
	}
}

func TestCandidateSlug(t *testing.T) {
	if got := CandidateSlug("Hello World"); got != "hello-world" {
		t.Errorf("CandidateSlug() = %q, want hello-world", got)
	}
	if got := CandidateSlug("?????"); got != fallbackSlug {
		t.Errorf("CandidateSlug() = %q, want %q", got, fallbackSlug)
	}
}

func TestTimestampedSlug(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 15, 30, 987654321, time.UTC)

	got := TimestampedSlug("hello-world", created)
	want := "hello-world-2024-05-01-101530"
	if got != want {
		t.Errorf("TimestampedSlug() = %q, want %q", got, want)
	}
	if Slugify(got) != got {
		t.Errorf("TimestampedSlug() result %q is not a fixed point of Slugify", got)
	}
	if len(created.Format(SlugTimestampLayout)) != 19 {
		t.Errorf("timestamp layout should render 19 characters")
	}
}
