package urlqueue

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultFollowPatterns are the portfolio, company and team sections worth enqueuing.
var DefaultFollowPatterns = []string{
	"**/portfolio/**",
	"**/portfolio*",
	"**/companies/**",
	"**/company/**",
	"**/companies/*",
	"**/team/*",
}

// FollowPatterns matches absolute URLs against a set of globs. A single "*"
// stops at "/", "**" crosses path segments.
type FollowPatterns struct {
	globs []glob.Glob
}

// NewFollowPatterns compiles patterns with "/" as the separator.
func NewFollowPatterns(patterns []string) (*FollowPatterns, error) {
	fp := &FollowPatterns{}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile follow pattern %q: %w", p, err)
		}
		fp.globs = append(fp.globs, g)
	}
	return fp, nil
}

// MustFollowPatterns is NewFollowPatterns that panics on a bad pattern.
func MustFollowPatterns(patterns []string) *FollowPatterns {
	fp, err := NewFollowPatterns(patterns)
	if err != nil {
		panic(err)
	}
	return fp
}

// Match reports whether urlStr matches any pattern.
func (fp *FollowPatterns) Match(urlStr string) bool {
	for _, g := range fp.globs {
		if g.Match(urlStr) {
			return true
		}
	}
	return false
}

// HostFilter restricts candidates to the crawl's starting host.
type HostFilter struct {
	StartHost    string
	InternalOnly bool
}

// Allow drops candidates that fail to parse or sit on another host. An empty
// StartHost puts no constraint on parseable candidates.
func (f HostFilter) Allow(candidate string) bool {
	if !f.InternalOnly {
		return true
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return false
	}
	if f.StartHost == "" {
		return true
	}
	return strings.EqualFold(u.Host, f.StartHost)
}

// HostOf returns the host of urlStr, or "" when it does not parse.
func HostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}

// StripFragment drops the #fragment so in-page anchors do not look like new pages.
func StripFragment(u *url.URL) string {
	clean := *u
	clean.Fragment = ""
	clean.RawFragment = ""
	return clean.String()
}

// NormalizeURL keys archived pages: fragment and "www." dropped, scheme defaulted to https.
func NormalizeURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""

	parsed.Host = strings.TrimPrefix(parsed.Host, "www.")

	if parsed.Scheme == "" {
		parsed.Scheme = "https"
	}

	return parsed.String()
}

// ComputeContentHash returns the hex md5 of content.
func ComputeContentHash(content string) string {
	hash := md5.Sum([]byte(content))
	return fmt.Sprintf("%x", hash)
}
