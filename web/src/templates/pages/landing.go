package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Landing is the signed-out home content.
func Landing() cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8"),
		g.Div(
			g.Class("bg-white shadow-2xl rounded-xl p-10"),
			g.H1(
				g.Class("text-4xl font-extrabold text-indigo-700 mb-4 border-b pb-2"),
				cmp.Text("Blenny: your account, everywhere"),
			),
			g.P(
				g.Class("text-gray-700 mb-6 leading-relaxed"),
				cmp.Text("Blenny is a server-rendered account shell. Sign in once and the top bar carries your identity across every page: an avatar badge derived from your name, a settings menu, and a logout that reaches every tab you have open."),
			),
			g.Div(
				g.Class("space-y-4"),
				g.Div(
					g.Class("p-6 bg-gray-50 rounded-lg shadow"),
					g.Div(g.Class("font-bold text-xl mb-2"), cmp.Text("Deterministic avatars")),
					g.P(g.Class("text-gray-700 text-base"), cmp.Text("No uploads. Your badge color and initials are computed from your display name, so the same name always gets the same badge.")),
				),
				g.Div(
					g.Class("p-6 bg-gray-50 rounded-lg shadow"),
					g.Div(g.Class("font-bold text-xl mb-2"), cmp.Text("One menu state per session")),
					g.P(g.Class("text-gray-700 text-base"), cmp.Text("The settings menu is held server-side, one state per browser session, and rendered over the wire. No client framework to keep in sync.")),
				),
				g.Div(
					g.Class("p-6 bg-gray-50 rounded-lg shadow"),
					g.Div(g.Class("font-bold text-xl mb-2"), cmp.Text("Logout that travels")),
					g.P(g.Class("text-gray-700 text-base"), cmp.Text("Logging out revokes the session and pushes the news over a live socket, so other tabs return to the login page on their own.")),
				),
			),
			g.Div(
				g.Class("mt-8 pt-4 border-t"),
				g.A(
					g.Href("/auth/login"),
					g.Class("inline-block rounded bg-indigo-600 px-6 py-2 font-bold text-white hover:bg-indigo-700"),
					cmp.Text("Sign in"),
				),
				g.A(
					g.Href("/auth/register"),
					g.Class("ml-4 text-indigo-600 hover:underline"),
					cmp.Text("or create an account"),
				),
			),
		),
	)
}
