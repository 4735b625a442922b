package parsers

import (
	"strings"

	"github.com/agent-swarm/server/internal/agent/model"
)

// ParseRoute maps raw classifier output onto the closed route set. The
// classifier is instructed to answer with a single token, but model output is
// untrusted: anything that does not normalise to a known route becomes
// RouteFallback, never a guessed agent.
func ParseRoute(content string) model.Route {
	s := strings.ToLower(strings.TrimSpace(content))
	s = strings.Trim(s, "\"'`.,:;!*# \t\r\n")

	// Tolerate a verbose model that wraps the token in a short sentence,
	// as long as exactly one route token appears.
	if s != string(model.RouteKnowledge) && s != string(model.RouteSupport) && s != string(model.RouteFallback) {
		s = exactlyOneToken(s)
	}

	switch model.Route(s) {
	case model.RouteKnowledge:
		return model.RouteKnowledge
	case model.RouteSupport:
		return model.RouteSupport
	default:
		return model.RouteFallback
	}
}

// exactlyOneToken returns the route token contained in s when exactly one of
// the known tokens occurs, otherwise the empty string. Requiring uniqueness
// keeps ambiguous answers ("knowledge or support") on the fallback path.
func exactlyOneToken(s string) string {
	var found string
	for _, tok := range []string{
		string(model.RouteKnowledge),
		string(model.RouteSupport),
		string(model.RouteFallback),
	} {
		if strings.Contains(s, tok) {
			if found != "" {
				return ""
			}
			found = tok
		}
	}
	return found
}
