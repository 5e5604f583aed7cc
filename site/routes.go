package site

// RouteHome is the alias navigation uses for the landing page.
const RouteHome = "home"

// RouteTable maps symbolic route names to paths.
type RouteTable struct {
	Home string `json:"home"`
}

var routes = RouteTable{Home: "/workspaces"}

// Routes returns the route alias table. It is a value, so callers cannot
// change the shared table.
func Routes() RouteTable {
	return routes
}

// Resolve returns the path registered for name.
func (r RouteTable) Resolve(name string) (string, bool) {
	p, ok := r.Aliases()[name]
	return p, ok
}

// Aliases returns a copy of the table as a map.
func (r RouteTable) Aliases() map[string]string {
	return map[string]string{RouteHome: r.Home}
}
