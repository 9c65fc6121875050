package components

import (
	"fmt"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"

	"github.com/mwhitaker/blenny/internal/avatar"
	"github.com/mwhitaker/blenny/internal/menu"
)

// TriggerID is the element id of the avatar button. It doubles as the anchor
// value the open request reports back to the server.
const TriggerID = "user-menu-trigger"

// mountSelector is the layout's menu mount; every menu request swaps its
// innerHTML so the whole region always reflects the server-held state.
const mountSelector = "#user-menu"

// Region renders the menu region for one session's current state: just the
// avatar trigger when closed, or the trigger plus the popup and a click-out
// backdrop when open. anchor is the trigger element id recorded when the
// menu was opened.
func Region(name string, open bool, anchor string) gomponents.Node {
	if !open {
		return Trigger(name, false)
	}

	return gomponents.Group([]gomponents.Node{
		backdrop(),
		Trigger(name, true),
		popup(anchor),
	})
}

// Trigger is the avatar button: the user's initials on their derived badge
// color. Clicking toggles the menu.
func Trigger(name string, open bool) gomponents.Node {
	label := avatar.Derive(name)

	action := hx.Post("/app/menu/open")
	expanded := "false"
	if open {
		action = hx.Post("/app/menu/close")
		expanded = "true"
	}

	return html.Button(
		html.ID(TriggerID),
		html.Type("button"),
		html.Class("avatar-button"),
		html.Style("background-color: "+label.Color),
		html.Title(name),
		html.Aria("haspopup", "menu"),
		html.Aria("expanded", expanded),
		html.Aria("label", "Settings menu for "+name),
		action,
		// The anchor value is this element's own id; the close request
		// needs no values.
		gomponents.If(!open, hx.Vals(fmt.Sprintf(`{"anchor": %q}`, TriggerID))),
		hx.Target(mountSelector),
		hx.Swap("innerHTML"),
		gomponents.Text(label.Initials),
	)
}

// popup is the dropdown itself, anchored to the trigger element.
func popup(anchor string) gomponents.Node {
	return html.Div(
		html.Class("menu-popup"),
		html.Role("menu"),
		html.Aria("labelledby", anchor),
		gomponents.Map(menu.Items(), menuItem),
	)
}

func menuItem(item menu.Item) gomponents.Node {
	if item.Disabled {
		return html.Button(
			html.Type("button"),
			html.Class("menu-item"),
			html.Role("menuitem"),
			html.Disabled(),
			html.Aria("disabled", "true"),
			gomponents.Text(item.Label),
		)
	}

	return html.Button(
		html.Type("button"),
		html.Class("menu-item"),
		html.Role("menuitem"),
		hx.Post("/app/menu/select"),
		hx.Vals(fmt.Sprintf(`{"label": %q}`, item.Label)),
		hx.Target(mountSelector),
		hx.Swap("innerHTML"),
		gomponents.Text(item.Label),
	)
}

// backdrop covers the viewport behind the popup so clicking anywhere else
// closes the menu.
func backdrop() gomponents.Node {
	return html.Button(
		html.Type("button"),
		html.Class("menu-backdrop"),
		html.Aria("label", "Close menu"),
		hx.Post("/app/menu/close"),
		hx.Target(mountSelector),
		hx.Swap("innerHTML"),
	)
}
