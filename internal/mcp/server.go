// Package mcp exposes the repertoire dataset to LLM clients over the Model
// Context Protocol.
package mcp

import (
	"log/slog"

	"repertoire/internal/models"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DatasetSource yields the currently loaded dataset. *server.Server
// satisfies this; the stdio binary uses a static holder.
type DatasetSource interface {
	Dataset() *models.Dataset
}

// New creates an MCP server with all tools and resources registered.
func New(src DatasetSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Repertoire", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Worship repertoire server. Query songs by section, chord progressions, member roster, vocal ranges, vocal harmony groups, and task assignments."),
	)

	h := &handlers{src: src, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolSearchSongs, Handler: h.searchSongs},
		server.ServerTool{Tool: toolGetSong, Handler: h.getSong},
		server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		server.ServerTool{Tool: toolGetMember, Handler: h.getMember},
		server.ServerTool{Tool: toolListTasks, Handler: h.listTasks},
		server.ServerTool{Tool: toolGetVocalGroup, Handler: h.getVocalGroup},
	)

	s.AddResources(
		server.ServerResource{Resource: resSummary, Handler: h.summary},
		server.ServerResource{Resource: resRoster, Handler: h.roster},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src DatasetSource
	log *slog.Logger
}

// --- Resource definitions ---

var resSummary = mcp.NewResource(
	"repertoire://summary",
	"Repertoire Summary",
	mcp.WithResourceDescription("Song counts per section, roster size, and available progressions"),
	mcp.WithMIMEType("application/json"),
)

var resRoster = mcp.NewResource(
	"repertoire://roster",
	"Member Roster",
	mcp.WithResourceDescription("All members with roles, vocal ranges, and assigned tasks"),
	mcp.WithMIMEType("application/json"),
)
