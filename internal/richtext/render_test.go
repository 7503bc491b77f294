package richtext

import (
	"bytes"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type testLinks struct{}

func (testLinks) CardURL(id string) string { return "/card/" + url.PathEscape(id) }
func (testLinks) SearchURL(query string) string { return "/" + url.PathEscape(query) }

func renderToString(t *testing.T, nodes []*html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, nodes))
	return buf.String()
}

func TestRender_PlainAndLinks(t *testing.T) {
	r := NewRenderer(testLinks{}, 0)
	nodes, err := r.RenderString(RichString{
		PlainText{Text: "Devour "},
		SpecificCardLink{Display: "Mantis", ID: "mantis"},
		PlainText{Text: " or find "},
		SearchLink{Display: "ants", Query: "k:ant"},
		PlainText{Text: " like "},
		CardReference{Display: "Lost Man", Identity: []byte(`{"name":"lost man"}`)},
	})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t,
		`<p>Devour <a href="/card/mantis">Mantis</a> or find <a href="/k:ant">ants</a> like Lost Man</p>`,
		renderToString(t, nodes))
}

func TestRender_EscapesText(t *testing.T) {
	r := NewRenderer(testLinks{}, 0)
	nodes, err := r.RenderString(RichString{PlainText{Text: "<b>&"}})
	require.NoError(t, err)
	assert.Equal(t, `<p>&lt;b&gt;&amp;</p>`, renderToString(t, nodes))
}

func TestRender_SagaProducesOrderedList(t *testing.T) {
	r := NewRenderer(testLinks{}, 0)
	paragraphs := Segment(RichString{
		PlainText{Text: "a"},
		Saga{Items: []RichString{{PlainText{Text: "i1"}}, {PlainText{Text: "i2"}}}},
		PlainText{Text: "b"},
	})
	require.Len(t, paragraphs, 3)

	nodes, err := r.Render(paragraphs)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t,
		`<p>a</p><p><ol><li><p>i1</p></li><li><p>i2</p></li></ol></p><p>b</p>`,
		renderToString(t, nodes))
}

func TestRender_NestedSagaUsesSameSegmentation(t *testing.T) {
	r := NewRenderer(testLinks{}, 0)
	nodes, err := r.RenderString(RichString{
		Saga{Items: []RichString{
			{PlainText{Text: "x\ny"}, SpecificCardLink{Display: "L", ID: "l"}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`<p><ol><li><p>x</p><p>y<a href="/card/l">L</a></p></li></ol></p>`,
		renderToString(t, nodes))
}

func TestRender_EmptyParagraph(t *testing.T) {
	r := NewRenderer(testLinks{}, 0)
	nodes, err := r.RenderString(RichString{LineBreak{}})
	require.NoError(t, err)
	assert.Equal(t, `<p></p>`, renderToString(t, nodes))
}

func TestRender_LineBreakInHandBuiltParagraph(t *testing.T) {
	r := NewRenderer(testLinks{}, 0)
	nodes, err := r.Render([]Paragraph{{PlainText{Text: "a"}, LineBreak{}, PlainText{Text: "b"}}})
	require.NoError(t, err)
	assert.Equal(t, `<p>a<br/>b</p>`, renderToString(t, nodes))
}

func TestRender_EmptyInputProducesNothing(t *testing.T) {
	r := NewRenderer(testLinks{}, 0)
	nodes, err := r.RenderString(nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func nestedSaga(depth int) RichString {
	rs := RichString{PlainText{Text: "leaf"}}
	for i := 0; i < depth; i++ {
		rs = RichString{Saga{Items: []RichString{rs}}}
	}
	return rs
}

func TestRender_DepthLimit(t *testing.T) {
	r := NewRenderer(testLinks{}, 3)

	_, err := r.RenderString(nestedSaga(3))
	require.NoError(t, err)

	_, err = r.RenderString(nestedSaga(4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooDeep))
}

func TestRender_ZeroValueRendererUsesDefaultDepth(t *testing.T) {
	r := &Renderer{Links: testLinks{}}
	_, err := r.RenderString(nestedSaga(DefaultMaxDepth))
	require.NoError(t, err)
	_, err = r.RenderString(nestedSaga(DefaultMaxDepth + 1))
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestRenderFlavor(t *testing.T) {
	nodes := RenderFlavor("First line.\n\n\"Second,\" said Dr. Vats.\n")
	assert.Equal(t,
		`<p class="flavor-line">First line.</p><p class="flavor-line">&#34;Second,&#34; said Dr. Vats.</p>`,
		renderToString(t, nodes))
	assert.Empty(t, RenderFlavor("\n\n"))
}
