package tag

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func newLink() *Tag {
	a := MustNew("a")
	Must(a.SetAttribute("href", "/search?q=a&b=c"))
	Must(a.SetAttribute("title", `say "hi"`))
	return a.AppendText("1 < 2 & 3")
}

func TestRender(t *testing.T) {
	div := MustNew("div").SetID("main")
	Must(div.Append(newLink()))
	Must(div.Append(MustNew("span")))

	tests := []struct {
		name string
		mode RenderMode
		want string
	}{
		{
			name: "normal",
			mode: Normal,
			want: `<div id="main"><a href="/search?q=a&amp;b=c" title="say &#34;hi&#34;">1 &lt; 2 &amp; 3</a><span></span></div>`,
		},
		{
			name: "start tag only",
			mode: StartTagOnly,
			want: `<div id="main">`,
		},
		{
			name: "end tag only",
			mode: EndTagOnly,
			want: `</div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := div.Render(tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, tests[0].want, div.String())
}

func TestRenderSelfClosing(t *testing.T) {
	br := MustNew("br")
	got, err := br.Render(SelfClosing)
	require.NoError(t, err)
	assert.Equal(t, "<br />", got)

	img := MustNew("img")
	Must(img.SetAttribute("src", "a.png"))
	got, err = img.Render(SelfClosing)
	require.NoError(t, err)
	assert.Equal(t, `<img src="a.png" />`, got)

	br.AppendText("x")
	_, err = br.Render(SelfClosing)
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestRenderUnknownMode(t *testing.T) {
	_, err := MustNew("div").Render(RenderMode(42))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "unknown", RenderMode(42).String())
}

func TestParseRenderMode(t *testing.T) {
	for _, mode := range []RenderMode{Normal, StartTagOnly, EndTagOnly, SelfClosing} {
		got, err := ParseRenderMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := ParseRenderMode("pretty")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestWriteTo(t *testing.T) {
	var sb strings.Builder
	n, err := newLink().WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	assert.Equal(t, newLink().String(), sb.String())
}

func TestTextString(t *testing.T) {
	assert.Equal(t, "&lt;b&gt; &#39;x&#39;", NewText("<b> 'x'").String())
	assert.Equal(t, "<b> 'x'", NewText("<b> 'x'").Value())
}

func TestNode(t *testing.T) {
	n := newLink().Node()
	assert.Equal(t, html.ElementNode, n.Type)
	assert.Equal(t, "a", n.Data)
	require.NotNil(t, n.FirstChild)
	assert.Equal(t, html.TextNode, n.FirstChild.Type)
	assert.Equal(t, "1 < 2 & 3", n.FirstChild.Data)

	var sb strings.Builder
	require.NoError(t, html.Render(&sb, n))
	back, err := Parse(sb.String())
	require.NoError(t, err)
	assert.True(t, back.Equal(newLink()))
}

func TestRenderVoidElement(t *testing.T) {
	br := MustNew("br")
	assert.Equal(t, "<br>", br.String())

	input := MustNew("input").SetType("checkbox").Checked(true)
	assert.Equal(t, `<input type="checkbox" checked="checked">`, input.String())

	p := MustNew("p")
	Must(p.Append(MustNew("br")))
	assert.Equal(t, "<p><br></p>", p.String())
	assert.True(t, Must(Parse(p.String())).Equal(p))

	br.AppendText("x")
	assert.Equal(t, "<br>x</br>", br.String())
}
