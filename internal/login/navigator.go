package login

import (
	"net/http"
	"sync"
)

// RootRoute is where a successful sign-in lands.
const RootRoute = "/"

// Navigator changes the route the user is looking at.
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

// RedirectNavigator answers the current request with a 303 to the route.
type RedirectNavigator struct {
	W http.ResponseWriter
	R *http.Request
}

func (n RedirectNavigator) Navigate(route string) {
	http.Redirect(n.W, n.R, route, http.StatusSeeOther)
}

// RecordingNavigator remembers the route so a script on the page can
// perform the navigation itself.
type RecordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *RecordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

// Route is the last recorded route, or "" if none.
func (n *RecordingNavigator) Route() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func (n *RecordingNavigator) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.routes)
}
