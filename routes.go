package goGate

import (
	"sort"
	"strings"
)

// RouteVisibility defines a public type used by goGate APIs.
//
// RouteVisibility instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RouteVisibility uint8

const (
	// Protected is an exported constant or variable used by the admission gate.
	Protected RouteVisibility = iota
	// Public is an exported constant or variable used by the admission gate.
	Public
)

// String describes the string operation and its observable behavior.
func (v RouteVisibility) String() string {
	if v == Public {
		return "public"
	}
	return "protected"
}

type routeKey struct {
	method string
	path   string
}

type groupRule struct {
	prefix     string
	visibility RouteVisibility
}

// RouteTable is the static route-visibility lookup built at router-registration
// time. Registration is not synchronized: populate the table before serving
// traffic, after which it is read-only and safe for concurrent Resolve calls.
//
// Precedence: an exact route marking beats any group marking; among groups the
// longest registered prefix wins; everything else is Protected.
type RouteTable struct {
	routes map[routeKey]RouteVisibility
	groups []groupRule
}

// NewRouteTable describes the newroutetable operation and its observable behavior.
func NewRouteTable() *RouteTable {
	return &RouteTable{
		routes: make(map[routeKey]RouteVisibility),
	}
}

// Route registers a route-level visibility marking for an exact method+path pair.
// Later registrations for the same pair overwrite earlier ones.
func (t *RouteTable) Route(method, path string, visibility RouteVisibility) *RouteTable {
	t.routes[routeKey{method: normalizeMethod(method), path: normalizePath(path)}] = visibility
	return t
}

// Group registers a group-level visibility marking for every route under the
// given path prefix.
func (t *RouteTable) Group(prefix string, visibility RouteVisibility) *RouteTable {
	t.groups = append(t.groups, groupRule{prefix: normalizePath(prefix), visibility: visibility})
	sort.SliceStable(t.groups, func(i, j int) bool {
		return len(t.groups[i].prefix) > len(t.groups[j].prefix)
	})
	return t
}

// Resolve returns the visibility for the matched route. Route-level markings
// take precedence over group-level ones; unmarked routes are Protected.
func (t *RouteTable) Resolve(method, path string) RouteVisibility {
	if t == nil {
		return Protected
	}

	path = normalizePath(path)
	if vis, ok := t.routes[routeKey{method: normalizeMethod(method), path: path}]; ok {
		return vis
	}

	for _, g := range t.groups {
		if strings.HasPrefix(path, g.prefix) {
			return g.visibility
		}
	}

	return Protected
}

func normalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
