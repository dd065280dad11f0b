package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	p := parsePage(t, "https://vc.example/", "<html><body></body></html>")
	constant := func(v string) Extractor { return func(Page) string { return v } }

	assert.Equal(t, "second", FirstNonEmpty(p, []Extractor{constant(""), constant("  second "), constant("third")}))
	assert.Equal(t, "", FirstNonEmpty(p, []Extractor{constant(" "), constant("")}))
	assert.Equal(t, "", FirstNonEmpty(p, nil))

	called := false
	FirstNonEmpty(p, []Extractor{constant("first"), func(Page) string { called = true; return "x" }})
	assert.False(t, called, "chain stops at the first hit")
}

func TestFirmNameChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "site name wins",
			html: `<head><meta property="og:site_name" content="Acme Ventures"><meta name="twitter:site" content="@acmevc"></head><body><h1>Welcome</h1></body>`,
			want: "Acme Ventures",
		},
		{
			name: "blank site name falls through to twitter",
			html: `<head><meta property="og:site_name" content="  "><meta name="twitter:site" content="@acmevc"></head><body><h1>Welcome</h1></body>`,
			want: "@acmevc",
		},
		{
			name: "first heading",
			html: `<body><header><h1> Acme Ventures </h1></header><h1>Other</h1></body>`,
			want: "Acme Ventures",
		},
		{
			name: "company name class",
			html: `<body><span class="company-name">Acme</span></body>`,
			want: "Acme",
		},
		{
			name: "nothing",
			html: `<body><p>hello</p></body>`,
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := parsePage(t, "https://vc.example/", "<html>"+tt.html+"</html>")
			assert.Equal(t, tt.want, FirstNonEmpty(p, DefaultFirmName))
		})
	}
}

func TestCompanyWebsite(t *testing.T) {
	t.Parallel()

	t.Run("skips social, self and relative links", func(t *testing.T) {
		t.Parallel()
		p := parsePage(t, "https://vc.example/company/acme", `<html><body>
			<a href="/relative">rel</a>
			<a href="https://twitter.com/acme">t</a>
			<a href="https://www.linkedin.com/company/acme">l</a>
			<a href="https://vc.example/company/acme#team">self</a>
			<a href="http://localhost">no dot</a>
			<a href="https://acme.space">site</a>
			<a href="https://later.example">later</a>
		</body></html>`)
		assert.Equal(t, "https://acme.space", CompanyWebsite(p))
	})

	t.Run("falls back to page url", func(t *testing.T) {
		t.Parallel()
		p := parsePage(t, "https://vc.example/company/acme", `<html><body><a href="https://twitter.com/acme">t</a></body></html>`)
		assert.Empty(t, CompanyWebsite(p))
		assert.Equal(t, "https://vc.example/company/acme", FirstNonEmpty(p, DefaultWebsite))
	})
}

func TestIndustryChain(t *testing.T) {
	t.Parallel()

	withClass := parsePage(t, "https://vc.example/", `<html><head><meta name="keywords" content="space"></head>
		<body><div class="company-industry"> Fintech </div></body></html>`)
	assert.Equal(t, "Fintech", FirstNonEmpty(withClass, DefaultIndustry))

	keywordsOnly := parsePage(t, "https://vc.example/", `<html><head><meta name="keywords" content="space, rockets"></head><body></body></html>`)
	assert.Equal(t, "space, rockets", FirstNonEmpty(keywordsOnly, DefaultIndustry))
}
