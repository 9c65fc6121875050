package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Login renders the sign-in form. A previously submitted email is replayed
// into the form so only the password needs re-typing after a failed attempt.
func Login(email string) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8 max-w-md"),
		g.Div(
			g.Class("bg-white shadow-2xl rounded-xl p-10"),
			g.H1(
				g.Class("text-3xl font-extrabold text-indigo-700 mb-6"),
				cmp.Text("Sign in"),
			),
			g.Form(
				g.Method("post"),
				g.Action("/auth/login"),
				g.Class("space-y-4"),
				formField("email", "Email", g.Input(
					g.Type("email"),
					g.ID("email"),
					g.Name("email"),
					g.Value(email),
					g.Required(),
					g.AutoComplete("email"),
					g.Class(inputClasses),
				)),
				formField("password", "Password", g.Input(
					g.Type("password"),
					g.ID("password"),
					g.Name("password"),
					g.Required(),
					g.AutoComplete("current-password"),
					g.Class(inputClasses),
				)),
				g.Button(
					g.Type("submit"),
					g.Class("w-full rounded bg-indigo-600 px-4 py-2 font-bold text-white hover:bg-indigo-700"),
					cmp.Text("Sign in"),
				),
			),
			g.P(
				g.Class("mt-6 text-sm text-gray-600"),
				cmp.Text("No account yet? "),
				g.A(g.Href("/auth/register"), g.Class("text-indigo-600 hover:underline"), cmp.Text("Register")),
			),
		),
	)
}

const inputClasses = "w-full rounded border border-gray-300 px-3 py-2 focus:border-indigo-500 focus:outline-none"

func formField(id, label string, input cmp.Node) cmp.Node {
	return g.Div(
		g.Label(
			g.For(id),
			g.Class("mb-1 block text-sm font-bold text-gray-700"),
			cmp.Text(label),
		),
		input,
	)
}
