package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Register renders the account creation form. The name is optional; an empty
// one is derived from the email address on the server.
func Register(email string) cmp.Node {
	return g.Div(
		g.Class("container mx-auto p-8 max-w-md"),
		g.Div(
			g.Class("bg-white shadow-2xl rounded-xl p-10"),
			g.H1(
				g.Class("text-3xl font-extrabold text-indigo-700 mb-6"),
				cmp.Text("Create an account"),
			),
			g.Form(
				g.Method("post"),
				g.Action("/auth/register"),
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
				formField("name", "Display name (optional)", g.Input(
					g.Type("text"),
					g.ID("name"),
					g.Name("name"),
					g.Placeholder("John Doe"),
					g.AutoComplete("name"),
					g.Class(inputClasses),
				)),
				formField("password", "Password", g.Input(
					g.Type("password"),
					g.ID("password"),
					g.Name("password"),
					g.Required(),
					g.MinLength("8"),
					g.AutoComplete("new-password"),
					g.Class(inputClasses),
				)),
				formField("password_confirm", "Confirm password", g.Input(
					g.Type("password"),
					g.ID("password_confirm"),
					g.Name("password_confirm"),
					g.Required(),
					g.AutoComplete("new-password"),
					g.Class(inputClasses),
				)),
				g.Button(
					g.Type("submit"),
					g.Class("w-full rounded bg-indigo-600 px-4 py-2 font-bold text-white hover:bg-indigo-700"),
					cmp.Text("Register"),
				),
			),
			g.P(
				g.Class("mt-6 text-sm text-gray-600"),
				cmp.Text("Already registered? "),
				g.A(g.Href("/auth/login"), g.Class("text-indigo-600 hover:underline"), cmp.Text("Sign in")),
			),
		),
	)
}
