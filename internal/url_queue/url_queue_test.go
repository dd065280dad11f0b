package urlqueue

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowPatterns(t *testing.T) {
	t.Parallel()

	fp, err := NewFollowPatterns(DefaultFollowPatterns)
	require.NoError(t, err)

	tests := []struct {
		url  string
		want bool
	}{
		{"https://vc.example/portfolio", true},
		{"https://vc.example/portfolio/", true},
		{"https://vc.example/portfolio/acme", true},
		{"https://vc.example/portfolio-companies", true},
		{"https://vc.example/companies/acme", true},
		{"https://vc.example/companies/acme/jobs", true},
		{"https://vc.example/company/acme/about", true},
		{"https://vc.example/team/jane", true},
		{"https://vc.example/team/jane/bio", false},
		{"https://vc.example/about", false},
		{"https://vc.example/blog/portfolio-news/2023", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fp.Match(tt.url))
		})
	}
}

func TestHostFilter(t *testing.T) {
	t.Parallel()

	internal := HostFilter{StartHost: "a.com", InternalOnly: true}

	assert.False(t, internal.Allow("https://b.com/portfolio"))
	assert.True(t, internal.Allow("https://a.com/portfolio/x"))
	assert.True(t, internal.Allow("https://A.com/portfolio/x"))
	assert.False(t, internal.Allow("https://a.com:8443/portfolio"), "port is part of the host")
	assert.False(t, internal.Allow("http://%zz/portfolio"), "unparseable candidate is dropped")

	t.Run("empty start host puts no constraint", func(t *testing.T) {
		t.Parallel()
		f := HostFilter{InternalOnly: true}
		assert.True(t, f.Allow("https://b.com/portfolio"))
		assert.False(t, f.Allow("http://%zz/portfolio"))
	})

	t.Run("external allowed when not internal only", func(t *testing.T) {
		t.Parallel()
		f := HostFilter{StartHost: "a.com"}
		assert.True(t, f.Allow("https://b.com/portfolio"))
	})
}

func TestHostOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.com", HostOf("https://a.com/portfolio"))
	assert.Equal(t, "a.com:8080", HostOf("http://a.com:8080/"))
	assert.Equal(t, "", HostOf("http://%zz"))
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://vc.example/portfolio", NormalizeURL("https://www.vc.example/portfolio#top"))
	assert.Equal(t, "https://vc.example/x?a=1", NormalizeURL("//vc.example/x?a=1"))
}

func TestStripFragment(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://vc.example/companies/acme#team")
	require.NoError(t, err)
	assert.Equal(t, "https://vc.example/companies/acme", StripFragment(u))
	assert.Equal(t, "https://vc.example/companies/acme#team", u.String(), "input is not mutated")
}

func TestComputeContentHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ComputeContentHash("acme"), ComputeContentHash("acme"))
	assert.NotEqual(t, ComputeContentHash("acme"), ComputeContentHash("acme2"))
	assert.Len(t, ComputeContentHash(""), 32)
}
