package layouts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"

	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/view"
)

func render(t *testing.T, node cmp.Node) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, node.Render(&sb))
	return sb.String()
}

func TestBaseSignedOut(t *testing.T) {
	out := render(t, Base("Home", view.FlashData{}, nil, cmp.Text("hello")))

	assert.Contains(t, out, "<title>Home - Blenny</title>")
	assert.Contains(t, out, "/auth/login")
	assert.NotContains(t, out, `id="user-menu"`, "signed-out shell must not mount the menu")
	assert.NotContains(t, out, "session.js")
}

func TestBaseSignedIn(t *testing.T) {
	name := "John Doe"
	user := &domain.User{Email: "john@example.com", Name: &name}

	out := render(t, Base("", view.FlashData{}, user, cmp.Text("hello")))

	assert.Contains(t, out, "<title>Blenny</title>")
	assert.Contains(t, out, `id="user-menu"`)
	assert.Contains(t, out, `hx-get="/app/menu"`)
	assert.Contains(t, out, "session.js")
}

func TestBaseFlashBanner(t *testing.T) {
	flash := view.FlashData{
		Success: []string{"Logged in successfully!"},
		Error:   []string{"Something went wrong."},
	}

	out := render(t, Base("Home", flash, nil, cmp.Text("hello")))

	assert.Contains(t, out, "Logged in successfully!")
	assert.Contains(t, out, "Something went wrong.")
}
