// Package menu implements the user-settings menu: the fixed set of rows shown
// under the avatar trigger, and a small open/closed controller that dispatches
// the logout action when that row is chosen.
package menu

import "sync"

// Row labels. The set and display order are fixed.
const (
	ItemProfile = "Profile"
	ItemLogout  = "Logout"
)

// Item is one selectable row in the settings menu.
type Item struct {
	Label    string
	Disabled bool
}

// Items returns the menu rows in display order. Profile is permanently
// non-interactive.
func Items() []Item {
	return []Item{
		{Label: ItemProfile, Disabled: true},
		{Label: ItemLogout},
	}
}

// Controller tracks whether the menu is open and which trigger element it is
// anchored to, and invokes the logout effect when the Logout row is selected.
//
// The menu is open exactly when an anchor is recorded; the zero value is a
// closed menu with no effects wired. A controller belongs to one browser
// session but can be driven by concurrent requests from multiple tabs, so its
// state is mutex-guarded. No operation on it can fail.
type Controller struct {
	mu       sync.Mutex
	anchor   string
	dispatch map[string]func()
}

// NewController builds a controller whose dispatch table maps the Logout row
// to the given effect. The effect is invoked fire-and-forget: the controller
// passes no arguments and never inspects the outcome.
func NewController(onLogout func()) *Controller {
	return &Controller{
		dispatch: map[string]func(){
			ItemLogout: onLogout,
		},
	}
}

// OpenAt records the id of the trigger element the menu is anchored to and
// opens the menu. Calling it while already open re-anchors. An empty id is
// treated as no anchor, leaving the menu closed.
func (c *Controller) OpenAt(anchor string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anchor = anchor
}

// Close hides the menu and clears the anchor. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anchor = ""
}

// SelectItem handles a chosen row label. A label present in the dispatch
// table has its effect invoked; any other label, including the disabled
// Profile row and labels that do not exist, is silently ignored. The menu
// closes in every case.
func (c *Controller) SelectItem(label string) {
	c.mu.Lock()
	fn := c.dispatch[label]
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
	c.Close()
}

// IsOpen reports whether the menu is currently shown.
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor != ""
}

// Anchor returns the trigger element id the menu is anchored to, or the empty
// string when the menu is closed.
func (c *Controller) Anchor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor
}
