package pages

import (
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/mwhitaker/blenny/internal/domain"
)

// Home is the signed-in dashboard content. signedInAt is the moment the
// current session was established, shown as a relative time.
func Home(user *domain.User, signedInAt time.Time) cmp.Node {
	name := user.DisplayName()

	return g.Div(
		g.Class("container mx-auto p-8"),
		g.Div(
			g.Class("bg-white shadow-2xl rounded-xl p-10"),
			g.Div(
				g.Class("flex items-center gap-6 border-b pb-6 mb-6"),
				g.Img(
					g.Src("/app/avatar.svg?name="+url.QueryEscape(name)+"&size=96"),
					g.Alt("Avatar for "+name),
					g.Width("96"),
					g.Height("96"),
					g.Class("rounded-lg shadow"),
				),
				g.Div(
					g.H1(
						g.Class("text-3xl font-extrabold text-indigo-700"),
						cmp.Text("Welcome, "+name),
					),
					g.P(g.Class("text-gray-500"), cmp.Text(user.Email)),
				),
			),
			g.P(
				g.Class("text-gray-700"),
				cmp.Text("You signed in "+humanize.Time(signedInAt)+"."),
			),
			g.P(
				g.Class("text-gray-700 mt-2"),
				cmp.Text("Open the menu behind your avatar in the top bar to manage your account. Logging out there ends this session everywhere, including any other open tabs."),
			),
		),
	)
}
