package mcp

import (
	"context"
	"strings"

	"repertoire/internal/extract"
	"repertoire/internal/models"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolSearchSongs = mcp.NewTool("search_songs",
	mcp.WithDescription("Search the repertoire by title substring and/or section. With no arguments, returns every song."),
	mcp.WithString("query", mcp.Description("Case-insensitive substring of the song title")),
	mcp.WithString("section", mcp.Description("Filter by section"), mcp.Enum("Entrée", "S-E", "Louange", "Adoration")),
)

var toolGetSong = mcp.NewTool("get_song",
	mcp.WithDescription("Get one song's full record: key, section, last sung date, member-specific keys, and musician assignments."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Song title (case-insensitive exact match)")),
)

var toolGetProgression = mcp.NewTool("get_progression",
	mcp.WithDescription("Get the chord progression text for a song."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Song title")),
)

var toolGetMember = mcp.NewTool("get_member",
	mcp.WithDescription("Get a member's role, vocal range, and assigned tasks. Name matching tolerates accents and first-name-only queries."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Member name")),
)

var toolListTasks = mcp.NewTool("list_tasks",
	mcp.WithDescription("List task assignments, for one member or for everyone."),
	mcp.WithString("member", mcp.Description("Restrict to one member's tasks")),
)

var toolGetVocalGroup = mcp.NewTool("get_vocal_group",
	mcp.WithDescription("Get the harmony-part assignments (Soprano, Alto 1, Alto 2/Tenor, Bass) for a lead singer."),
	mcp.WithString("lead", mcp.Required(), mcp.Description("Lead singer name")),
)

// --- Tool handlers ---

func (h *handlers) searchSongs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.ToLower(req.GetString("query", ""))
	section := req.GetString("section", "")

	matched := []models.Song{}
	for _, song := range h.src.Dataset().Songs {
		if query != "" && !strings.Contains(strings.ToLower(song.Title), query) {
			continue
		}
		if section != "" && !strings.EqualFold(string(song.Section), section) {
			continue
		}
		matched = append(matched, song)
	}

	return mcp.NewToolResultJSON(matched)
}

func (h *handlers) getSong(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}

	for _, song := range h.src.Dataset().Songs {
		if strings.EqualFold(song.Title, title) {
			return mcp.NewToolResultJSON(song)
		}
	}
	return mcp.NewToolResultError("no song titled " + title), nil
}

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}

	text, ok := h.src.Dataset().Progressions[strings.ToLower(title)]
	if !ok {
		return mcp.NewToolResultError("no progression for " + title), nil
	}
	return mcp.NewToolResultJSON(map[string]string{"title": title, "progression": text})
}

func (h *handlers) getMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	ds := h.src.Dataset()
	var member *models.Member
	for i := range ds.Members {
		if extract.SameName(ds.Members[i].Name, name) {
			member = &ds.Members[i]
			break
		}
	}
	if member == nil {
		return mcp.NewToolResultError("no member named " + name), nil
	}

	out := map[string]any{
		"name": member.Name,
		"role": member.Role,
	}
	for rangeName, vr := range ds.VocalRanges {
		if extract.SameName(rangeName, member.Name) {
			out["vocal_range"] = vr
			break
		}
	}
	for taskName, tasks := range ds.Tasks {
		if extract.SameName(taskName, member.Name) {
			out["tasks"] = tasks
			break
		}
	}

	return mcp.NewToolResultJSON(out)
}

func (h *handlers) listTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ds := h.src.Dataset()

	member := req.GetString("member", "")
	if member == "" {
		return mcp.NewToolResultJSON(ds.Tasks)
	}

	for name, tasks := range ds.Tasks {
		if extract.SameName(name, member) {
			return mcp.NewToolResultJSON(map[string][]string{name: tasks})
		}
	}
	return mcp.NewToolResultError("no tasks recorded for " + member), nil
}

func (h *handlers) getVocalGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lead, err := req.RequireString("lead")
	if err != nil {
		return mcp.NewToolResultError("lead parameter is required"), nil
	}

	for name, parts := range h.src.Dataset().VocalGroups {
		if extract.SameName(name, lead) {
			return mcp.NewToolResultJSON(map[string]any{"lead": name, "parts": parts})
		}
	}
	return mcp.NewToolResultError("no vocal group led by " + lead), nil
}
