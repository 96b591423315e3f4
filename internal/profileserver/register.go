// Package profileserver registers the profile aggregation MCP tools:
// profile_aggregate, profile_get, github_profile, outreach_message.
package profileserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all profile tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerProfileAggregate(server)
	registerProfileGet(server)
	registerGithubProfile(server)
	registerOutreachMessage(server)
}
