package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agent-swarm/server/internal/agent/model"
)

func TestParseRouteExactTokens(t *testing.T) {
	assert.Equal(t, model.RouteKnowledge, ParseRoute("knowledge"))
	assert.Equal(t, model.RouteSupport, ParseRoute("support"))
	assert.Equal(t, model.RouteFallback, ParseRoute("fallback"))
}

func TestParseRouteNormalisation(t *testing.T) {
	assert.Equal(t, model.RouteKnowledge, ParseRoute("  Knowledge \n"))
	assert.Equal(t, model.RouteSupport, ParseRoute("SUPPORT."))
	assert.Equal(t, model.RouteKnowledge, ParseRoute(`"knowledge"`))
	assert.Equal(t, model.RouteSupport, ParseRoute("**support**"))
}

func TestParseRouteVerboseOutput(t *testing.T) {
	// A wrapped answer is accepted only when exactly one token appears.
	assert.Equal(t, model.RouteKnowledge, ParseRoute("the route is: knowledge"))
	assert.Equal(t, model.RouteSupport, ParseRoute("I would classify this as support"))
}

func TestParseRouteOutOfSchema(t *testing.T) {
	assert.Equal(t, model.RouteFallback, ParseRoute(""))
	assert.Equal(t, model.RouteFallback, ParseRoute("sales"))
	assert.Equal(t, model.RouteFallback, ParseRoute("I cannot classify this message"))
	// Ambiguous answers containing two tokens stay on the fallback path.
	assert.Equal(t, model.RouteFallback, ParseRoute("knowledge or support"))
}
