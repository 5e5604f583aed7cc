package views

import (
	"strings"

	"github.com/digitranslab/aegisweb/site"
)

// BuildNav returns the primary navigation for currentPath: the home route
// first, then the external destinations from the site links.
func BuildNav(cfg *site.Config, routes site.RouteTable, currentPath string) []NavItem {
	if currentPath == "" {
		currentPath = "/"
	}
	links := cfg.Links()
	return []NavItem{
		{Label: "Workspaces", Href: routes.Home, Active: isActive(routes.Home, currentPath)},
		{Label: "Docs", Href: links.Docs, External: true},
		{Label: "Playbooks", Href: links.Playbooks, External: true},
		{Label: "Discord", Href: links.Discord, External: true},
		{Label: "GitHub", Href: links.GitHub, External: true},
	}
}

// isActive matches the exact path or a path below it on a segment boundary.
func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}
