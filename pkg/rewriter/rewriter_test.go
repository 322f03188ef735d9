package rewriter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagtree/internal/config"
	"tagtree/pkg/markup"
	"tagtree/pkg/tag"
)

const menu = `<ul class="menu"><li class="item">a</li><li class="item active">b</li></ul>`

func newRewriter(t *testing.T, cfg config.Config) (*Rewriter, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(cfg, WithLogger(logger)), hook
}

func TestRewriteUnchanged(t *testing.T) {
	r, _ := newRewriter(t, config.Default())

	result, err := r.Rewrite(menu)
	require.NoError(t, err)
	assert.Equal(t, menu, result.HTML)
	assert.Equal(t, 1, result.Matches)
	assert.Equal(t, 3, result.Stats.Elements)
	assert.Equal(t, tag.Must(tag.Parse(menu)).Hash(), result.Hash)
}

func TestRewriteRootEdits(t *testing.T) {
	cfg := config.Default()
	cfg.Attributes = []string{"id=nav"}
	cfg.Data = []string{"state=open"}
	cfg.AddClasses = []string{"wide menu"}
	cfg.RemoveClasses = []string{"menu"}
	cfg.Styles = []string{"color: red", "background:url(http://x)"}
	r, _ := newRewriter(t, cfg)

	result, err := r.Rewrite(`<ul class="menu" style="margin:0"></ul>`)
	require.NoError(t, err)
	assert.Equal(t,
		`<ul class="wide" style="margin:0;color:red;background:url(http://x)" id="nav" data-state="open"></ul>`,
		result.HTML)

	want := Stats{
		Elements:       1,
		AttributesSet:  1,
		DataSet:        1,
		ClassesAdded:   1,
		ClassesRemoved: 1,
		StylesSet:      2,
	}
	got := result.Stats
	got.ProcessingTime = 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteKeepExisting(t *testing.T) {
	cfg := config.Default()
	cfg.ReplaceExisting = false
	cfg.Attributes = []string{"id=new"}
	cfg.Styles = []string{"color:blue"}
	r, _ := newRewriter(t, cfg)

	out, err := r.RewriteString(`<p id="old" style="color:red"></p>`)
	require.NoError(t, err)
	assert.Equal(t, `<p id="old" style="color:red"></p>`, out)
}

func TestRewriteRemoveStyles(t *testing.T) {
	cfg := config.Default()
	cfg.RemoveStyles = []string{"color", "missing"}
	r, _ := newRewriter(t, cfg)

	result, err := r.Rewrite(`<p style="color:red;width:1px"></p>`)
	require.NoError(t, err)
	assert.Equal(t, `<p style="width:1px"></p>`, result.HTML)
	assert.Equal(t, 1, result.Stats.StylesRemoved)
}

func TestRewriteSelect(t *testing.T) {
	cfg := config.Default()
	cfg.Select = "li.item"
	cfg.AddClasses = []string{"done"}
	r, _ := newRewriter(t, cfg)

	result, err := r.Rewrite(menu)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Matches)
	assert.Equal(t,
		`<ul class="menu"><li class="item done">a</li><li class="item active done">b</li></ul>`,
		result.HTML)
	assert.Equal(t, 2, result.Stats.ClassesAdded)
}

func TestRewriteExtract(t *testing.T) {
	cfg := config.Default()
	cfg.Select = "li"
	cfg.Extract = true
	cfg.Mode = "start"
	cfg.Separator = "|"
	r, _ := newRewriter(t, cfg)

	result, err := r.Rewrite(menu)
	require.NoError(t, err)
	assert.Equal(t, `<li class="item">|<li class="item active">`, result.HTML)

	first := tag.Must(tag.Parse(`<li class="item">a</li>`))
	assert.Equal(t, first.Hash(), result.Hash)
}

func TestRewriteNoMatches(t *testing.T) {
	cfg := config.Default()
	cfg.Select = "table"
	cfg.Extract = true
	r, hook := newRewriter(t, cfg)

	result, err := r.Rewrite(menu)
	require.NoError(t, err)
	assert.Equal(t, "", result.HTML)
	assert.Equal(t, 0, result.Matches)
	assert.Zero(t, result.Hash)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, "table", entry.Data["selector"])
		}
	}
	assert.True(t, warned, "expected a warning for an empty selection")
}

func TestRewriteErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		input  string
		is     error
	}{
		{name: "syntax error", input: `<div><span></div>`, is: tag.ErrSyntax},
		{name: "two roots", input: `<p></p><p></p>`, is: tag.ErrShape},
		{name: "bad mode", modify: func(c *config.Config) { c.Mode = "pretty" }, input: `<p></p>`, is: tag.ErrInvalidArgument},
		{name: "bad selector", modify: func(c *config.Config) { c.Select = "a[" }, input: `<p></p>`, is: tag.ErrInvalidArgument},
		{name: "bad style value", modify: func(c *config.Config) { c.Styles = []string{"color:red;x"} }, input: `<p></p>`, is: tag.ErrInvalidArgument},
		{name: "malformed existing style", modify: func(c *config.Config) { c.Styles = []string{"color:red"} }, input: `<p style="oops"></p>`, is: tag.ErrValidation},
		{name: "self-closing with contents", modify: func(c *config.Config) { c.Mode = "self-closing" }, input: `<p>x</p>`, is: tag.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.modify != nil {
				tt.modify(&cfg)
			}
			r, _ := newRewriter(t, cfg)
			_, err := r.Rewrite(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.is), "got %v", err)
		})
	}
}

func TestRewriteDocument(t *testing.T) {
	cfg := config.Default()
	cfg.Document = true
	cfg.Select = "body"
	cfg.Extract = true
	r, _ := newRewriter(t, cfg)

	out, err := r.RewriteString(`<!DOCTYPE html><html><head><title>t</title></head><body><p>hi</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, `<body><p>hi</p></body>`, out)
}

func TestWithParser(t *testing.T) {
	r := New(config.Default(), WithParser(markup.NewDocumentParser()), WithLogger(logrus.New()))
	out, err := r.RewriteString(`<html><head></head><body></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, `<html><head></head><body></body></html>`, out)
}

func TestCompare(t *testing.T) {
	r, _ := newRewriter(t, config.Default())

	c, err := r.Compare(`<p class="a b" style="x:1;y:2">t</p>`, `<p style="y:2; x:1" class="b a">t</p>`)
	require.NoError(t, err)
	assert.True(t, c.Equal)
	assert.Equal(t, c.HashA, c.HashB)

	c, err = r.Compare(`<p>t</p>`, `<p>u</p>`)
	require.NoError(t, err)
	assert.False(t, c.Equal)
	assert.Equal(t, c.HashA, c.HashB, "hash ignores contents")

	_, err = r.Compare(`<span>`, `<p></p>`)
	assert.Error(t, err)
	_, err = r.Compare(`<p></p>`, `text`)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	r, _ := newRewriter(t, config.Default())

	issues, err := r.Validate(`<p></p>`)
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = r.Validate(`<div><br></br></div>`)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, markup.CodeEndTagForVoidElement, issues[0].Code)

	_, err = r.Validate(`<p></p><p></p>`)
	assert.True(t, errors.Is(err, tag.ErrShape))
}

func TestRewriteFunc(t *testing.T) {
	cfg := config.Default()
	cfg.Attributes = []string{"title=x"}
	out, err := Rewrite(`<a href="/"></a>`, cfg)
	require.NoError(t, err)
	assert.Equal(t, `<a href="/" title="x"></a>`, out)
}
