package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

func TestRenderComponentGomponents(t *testing.T) {
	r := NewUniversalRenderer()

	node := html.Div(html.ID("menu"), cmp.Text("hello"))
	out, err := r.RenderComponent(context.Background(), node)

	require.NoError(t, err)
	assert.Equal(t, `<div id="menu">hello</div>`, string(out))
}

func TestRenderComponentTempl(t *testing.T) {
	r := NewUniversalRenderer()

	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<span>templ</span>"))
		return err
	})

	out, err := r.RenderComponent(context.Background(), component)
	require.NoError(t, err)
	assert.Equal(t, "<span>templ</span>", string(out))
}

func TestRenderComponentRejectsUnknownTypes(t *testing.T) {
	r := NewUniversalRenderer()

	_, err := r.RenderComponent(context.Background(), 42)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported component type")
}

func TestRenderPage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	r := NewUniversalRenderer()
	err := r.RenderPage(c, http.StatusOK, html.Div(cmp.Text("page")))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "<div>page</div>", rec.Body.String())
}
