package layouts

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/view"
)

// Base wraps page content in the application shell: document head, the top
// navigation bar with the user-settings menu mount, and the flash banner.
// A nil user renders the signed-out shell (login/register links, no menu).
func Base(title string, flash view.FlashData, user *domain.User, content cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Script(g.Src("https://unpkg.com/htmx.org@2.0.4")),
				g.Script(g.Src("https://cdn.tailwindcss.com")),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				// session.js watches the realtime socket so a logout in one
				// tab sends every other tab back to the login page.
				cmp.If(user != nil,
					g.Script(g.Src("/static/js/session.js"), g.Defer()),
				),
			),
			g.Body(
				g.Class("min-h-screen bg-gray-100 text-gray-900"),
				navbar(user),
				flashBanner(flash),
				g.Main(content),
			),
		),
	)
}

func navbar(user *domain.User) cmp.Node {
	return g.Nav(
		g.Class("bg-white shadow"),
		g.Div(
			g.Class("container mx-auto flex items-center justify-between px-8 py-3"),
			g.A(
				g.Href("/"),
				g.Class("text-xl font-extrabold text-indigo-700"),
				cmp.Text("Blenny"),
			),
			navActions(user),
		),
	)
}

func navActions(user *domain.User) cmp.Node {
	if user == nil {
		return g.Div(
			g.Class("space-x-4"),
			g.A(g.Href("/auth/login"), g.Class("text-indigo-600 hover:underline"), cmp.Text("Sign in")),
			g.A(g.Href("/auth/register"), g.Class("text-indigo-600 hover:underline"), cmp.Text("Register")),
		)
	}

	// The user-settings menu loads itself into this mount, so every page
	// shares the one server-held menu state for this session.
	return g.Div(
		g.ID("user-menu"),
		hx.Get("/app/menu"),
		hx.Trigger("load"),
		hx.Swap("innerHTML"),
	)
}

func flashBanner(flash view.FlashData) cmp.Node {
	if len(flash.Success) == 0 && len(flash.Error) == 0 {
		return nil
	}

	return g.Div(
		g.Class("container mx-auto mt-4 space-y-2 px-8"),
		cmp.Map(flash.Success, func(msg string) cmp.Node {
			return g.Div(
				g.Class("rounded border border-green-300 bg-green-50 px-4 py-2 text-green-800"),
				g.Role("status"),
				cmp.Text(msg),
			)
		}),
		cmp.Map(flash.Error, func(msg string) cmp.Node {
			return g.Div(
				g.Class("rounded border border-red-300 bg-red-50 px-4 py-2 text-red-800"),
				g.Role("alert"),
				cmp.Text(msg),
			)
		}),
	)
}
