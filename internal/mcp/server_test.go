package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"repertoire/internal/models"

	"github.com/mark3labs/mcp-go/mcp"
)

type staticSource struct {
	ds *models.Dataset
}

func (s staticSource) Dataset() *models.Dataset { return s.ds }

func testHandlers() *handlers {
	ds := models.NewDataset()
	ds.Songs = []models.Song{
		{ID: "Louange_1", Title: "Amazing Grace", OriginalKey: "G", Section: models.SectionLouange},
		{ID: "Louange_2", Title: "Grandes sont tes merveilles", OriginalKey: "C", Section: models.SectionLouange},
		{ID: "Adoration_1", Title: "Agnus Dei", OriginalKey: "A", Section: models.SectionAdoration},
	}
	ds.Members = []models.Member{
		{Name: "Marie Dupont", Role: "chanteuse"},
	}
	ds.Progressions["amazing grace"] = "Verse: G C G D"
	ds.VocalRanges["Marie Dupont"] = models.VocalRange{VoiceType: "Soprano", LowChest: "G3", HighChest: "C5"}
	ds.Tasks["Marie"] = []string{"Accueil"}
	ds.VocalGroups["Marie Dupont"] = map[string][]string{
		models.PartSoprano:    {"Claire"},
		models.PartAlto1:      {},
		models.PartAlto2Tenor: {"Paul"},
		models.PartBass:       {},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &handlers{src: staticSource{ds: ds}, log: log}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result content type %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func TestSearchSongsByQuery(t *testing.T) {
	h := testHandlers()

	res, err := h.searchSongs(context.Background(), callReq(map[string]any{"query": "grace"}))
	if err != nil {
		t.Fatalf("searchSongs: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Amazing Grace") || strings.Contains(text, "Agnus Dei") {
		t.Errorf("result = %s, want only Amazing Grace", text)
	}
}

func TestSearchSongsBySection(t *testing.T) {
	h := testHandlers()

	res, err := h.searchSongs(context.Background(), callReq(map[string]any{"section": "Louange"}))
	if err != nil {
		t.Fatalf("searchSongs: %v", err)
	}
	text := resultText(t, res)
	if strings.Contains(text, "Agnus Dei") {
		t.Errorf("section filter leaked other sections: %s", text)
	}
	if !strings.Contains(text, "Amazing Grace") || !strings.Contains(text, "merveilles") {
		t.Errorf("missing expected songs: %s", text)
	}
}

func TestGetSongNotFound(t *testing.T) {
	h := testHandlers()

	res, err := h.getSong(context.Background(), callReq(map[string]any{"title": "Nope"}))
	if err != nil {
		t.Fatalf("getSong: %v", err)
	}
	if !res.IsError {
		t.Error("expected error result for unknown title")
	}
}

func TestGetProgression(t *testing.T) {
	h := testHandlers()

	res, err := h.getProgression(context.Background(), callReq(map[string]any{"title": "Amazing Grace"}))
	if err != nil {
		t.Fatalf("getProgression: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "G C G D") {
		t.Errorf("missing progression text: %s", resultText(t, res))
	}
}

func TestGetMemberJoinsRangeAndTasks(t *testing.T) {
	h := testHandlers()

	// First-name query with no accent must still resolve, and the tasks map
	// keyed by first name only must still attach.
	res, err := h.getMember(context.Background(), callReq(map[string]any{"name": "marie"}))
	if err != nil {
		t.Fatalf("getMember: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	text := resultText(t, res)
	for _, want := range []string{"chanteuse", "Soprano", "Accueil"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q: %s", want, text)
		}
	}
}

func TestGetVocalGroup(t *testing.T) {
	h := testHandlers()

	res, err := h.getVocalGroup(context.Background(), callReq(map[string]any{"lead": "Marie"}))
	if err != nil {
		t.Fatalf("getVocalGroup: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Claire") || !strings.Contains(text, "Alto 2/Tenor") {
		t.Errorf("result = %s, want parts with members", text)
	}
}

func TestListTasksUnknownMember(t *testing.T) {
	h := testHandlers()

	res, err := h.listTasks(context.Background(), callReq(map[string]any{"member": "Zoe"}))
	if err != nil {
		t.Fatalf("listTasks: %v", err)
	}
	if !res.IsError {
		t.Error("expected error result for member with no tasks")
	}
}
