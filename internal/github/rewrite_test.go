package github

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteRelativeURLs_Images(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "relative path",
			in:   `<img src="assets/pic.png">`,
			want: `<img src="https://raw.githubusercontent.com/alice/site/main/assets/pic.png">`,
		},
		{
			name: "dot slash prefix",
			in:   `<img alt="x" src="./assets/pic.png" width="10">`,
			want: `<img alt="x" src="https://raw.githubusercontent.com/alice/site/main/assets/pic.png" width="10">`,
		},
		{
			name: "root relative and backslashes",
			in:   `<img src="/docs\img\a.png">`,
			want: `<img src="https://raw.githubusercontent.com/alice/site/main/docs/img/a.png">`,
		},
		{
			name: "single quotes",
			in:   `<img src='pic.png'>`,
			want: `<img src='https://raw.githubusercontent.com/alice/site/main/pic.png'>`,
		},
		{
			name: "uppercase tag and attribute",
			in:   `<IMG SRC="pic.png">`,
			want: `<IMG SRC="https://raw.githubusercontent.com/alice/site/main/pic.png">`,
		},
		{
			name: "spaces around equals",
			in:   `<img src = "pic.png">`,
			want: `<img src = "https://raw.githubusercontent.com/alice/site/main/pic.png">`,
		},
		{name: "absolute https", in: `<img src="https://example.com/x.png">`, want: `<img src="https://example.com/x.png">`},
		{name: "absolute http uppercase", in: `<img src="HTTP://example.com/x.png">`, want: `<img src="HTTP://example.com/x.png">`},
		{name: "protocol relative", in: `<img src="//cdn.example.com/x.png">`, want: `<img src="//cdn.example.com/x.png">`},
		{name: "data uri", in: `<img src="data:image/png;base64,AAAA">`, want: `<img src="data:image/png;base64,AAAA">`},
		{name: "fragment", in: `<img src="#sprite">`, want: `<img src="#sprite">`},
		{name: "data-src untouched", in: `<img data-src="lazy.png">`, want: `<img data-src="lazy.png">`},
		{name: "empty value", in: `<img src="">`, want: `<img src="">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteRelativeURLs(tt.in, "alice", "site", "main"))
		})
	}
}

func TestRewriteRelativeURLs_Anchors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "relative file",
			in:   `<a href="docs/guide.md">Guide</a>`,
			want: `<a href="https://github.com/alice/site/blob/main/docs/guide.md">Guide</a>`,
		},
		{
			name: "parent relative",
			in:   `<a class="x" href='../LICENSE'>License</a>`,
			want: `<a class="x" href='https://github.com/alice/site/blob/main/LICENSE'>License</a>`,
		},
		{name: "absolute", in: `<a href="https://example.com/x">x</a>`, want: `<a href="https://example.com/x">x</a>`},
		{name: "fragment", in: `<a href="#top">top</a>`, want: `<a href="#top">top</a>`},
		{name: "mailto", in: `<a href="mailto:me@example.com">mail</a>`, want: `<a href="mailto:me@example.com">mail</a>`},
		{name: "mailto uppercase", in: `<a href="MAILTO:me@example.com">mail</a>`, want: `<a href="MAILTO:me@example.com">mail</a>`},
		{name: "abbr is not an anchor", in: `<abbr href="x">x</abbr>`, want: `<abbr href="x">x</abbr>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteRelativeURLs(tt.in, "alice", "site", "main"))
		})
	}
}

func TestRewriteRelativeURLs_PrefixesAreTagSpecific(t *testing.T) {
	// data: links and mailto: images are not in the skip lists of their tag.
	in := `<a href="data:text/plain,hi">d</a><img src="mailto:x">`
	out := RewriteRelativeURLs(in, "alice", "site", "main")

	assert.Contains(t, out, `href="https://github.com/alice/site/blob/main/data:text/plain,hi"`)
	assert.Contains(t, out, `src="https://raw.githubusercontent.com/alice/site/main/mailto:x"`)
}

func TestRewriteRelativeURLs_LeavesRestOfDocumentAlone(t *testing.T) {
	in := `<h1 id="site">site</h1>
<p>See src="not/an/attribute.png" and href="plain/text" in prose.</p>
<p><a href="#install">Install</a> · <a href="CONTRIBUTING.md">Contributing</a></p>
<pre><code>img src="code.png"</code></pre>
<p align="center"><img width="200" src="docs/logo.png" alt="logo"/></p>`

	out := RewriteRelativeURLs(in, "alice", "site", "main")

	assert.Contains(t, out, `<h1 id="site">site</h1>`)
	assert.Contains(t, out, `See src="not/an/attribute.png" and href="plain/text" in prose.`)
	assert.Contains(t, out, `<pre><code>img src="code.png"</code></pre>`)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	var hrefs []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	assert.Equal(t, []string{"#install", "https://github.com/alice/site/blob/main/CONTRIBUTING.md"}, hrefs)

	src, ok := doc.Find("img").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "https://raw.githubusercontent.com/alice/site/main/docs/logo.png", src)
	width, _ := doc.Find("img").Attr("width")
	assert.Equal(t, "200", width)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "a/b.png", normalizePath("./a/b.png"))
	assert.Equal(t, "a/b.png", normalizePath(`..\a\b.png`))
	assert.Equal(t, "a.png", normalizePath("///a.png"))
	assert.Equal(t, "a.png", normalizePath("a.png"))
}
