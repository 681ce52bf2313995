package mcp

import (
	"context"
	"encoding/json"

	"repertoire/internal/extract"
	"repertoire/internal/models"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) summary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds := h.src.Dataset()

	bySection := map[string]int{}
	for _, section := range models.Sections {
		bySection[string(section)] = len(ds.SongsBySection(section))
	}

	return jsonContents(req.Params.URI, map[string]any{
		"songs_total":       len(ds.Songs),
		"songs_by_section":  bySection,
		"members":           len(ds.Members),
		"progression_count": len(ds.Progressions),
		"vocal_groups":      len(ds.VocalGroups),
	})
}

func (h *handlers) roster(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ds := h.src.Dataset()

	type memberEntry struct {
		Name       string             `json:"name"`
		Role       string             `json:"role"`
		VocalRange *models.VocalRange `json:"vocalRange,omitempty"`
		Tasks      []string           `json:"tasks,omitempty"`
	}

	entries := make([]memberEntry, 0, len(ds.Members))
	for _, m := range ds.Members {
		entry := memberEntry{Name: m.Name, Role: m.Role}
		for rangeName, vr := range ds.VocalRanges {
			if extract.SameName(rangeName, m.Name) {
				r := vr
				entry.VocalRange = &r
				break
			}
		}
		for taskName, tasks := range ds.Tasks {
			if extract.SameName(taskName, m.Name) {
				entry.Tasks = tasks
				break
			}
		}
		entries = append(entries, entry)
	}

	return jsonContents(req.Params.URI, entries)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
