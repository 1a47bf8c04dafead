package ui

import (
	"testing"

	"github.com/snoosift/snoosift/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRollupDomain(t *testing.T) {
	tests := []struct {
		name string
		post models.Post
		want string
	}{
		{"self post", models.Post{IsSelf: true, Domain: "self.golang"}, "(self)"},
		{"plain domain", models.Post{Domain: "example.com"}, "example.com"},
		{"subdomain rolls up", models.Post{Domain: "blog.example.com"}, "example.com"},
		{"multi-label suffix", models.Post{Domain: "news.example.co.uk"}, "example.co.uk"},
		{"domain from url", models.Post{URL: "https://www.example.com/a/b"}, "example.com"},
		{"no domain at all", models.Post{}, "(unknown)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rollupDomain(&tt.post))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "toolong...", truncate("toolongvalue", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestFormatEpoch(t *testing.T) {
	assert.Equal(t, "-", formatEpoch(0))
	assert.Equal(t, "2021-01-01", formatEpoch(1609459200))

	assert.Equal(t, "-", formatEpochPtr(nil))
	epoch := float64(1609459200)
	assert.Equal(t, "2021-01-01", formatEpochPtr(&epoch))
}
