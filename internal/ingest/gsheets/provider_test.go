package gsheets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"repertoire/internal/extract"
)

type stubFetcher struct {
	payloads map[string]string
	fetched  []string
}

func (s *stubFetcher) FetchCSV(_ context.Context, gid string) (string, error) {
	s.fetched = append(s.fetched, gid)
	text, ok := s.payloads[gid]
	if !ok {
		return "", errors.New("boom")
	}
	return text, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const louangeCSV = "Chansons,,,Last sang\nOceans: D,,,2024-03-10\nAlleluia,,,\n"

// TestLoadSkipsUnconfiguredAndFailed verifies an absent GID and a failing
// fetch each skip their sheet while the rest of the load succeeds.
func TestLoadSkipsUnconfiguredAndFailed(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string]string{"100": louangeCSV}}
	sheets := []SheetRef{
		{Name: "Louange", GID: "100"},
		{Name: "Tessiture", GID: ""},      // not configured
		{Name: "Membres", GID: "missing"}, // fetch fails
	}
	log := testLogger()
	p := NewProvider(fetcher, sheets, extract.New(log, nil), log)

	ds, res, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(ds.Songs) != 2 {
		t.Errorf("songs = %d, want 2", len(ds.Songs))
	}
	if res.SheetsProcessed != 1 {
		t.Errorf("processed = %d, want 1", res.SheetsProcessed)
	}
	// The unconfigured sheet must not be fetched at all.
	if len(fetcher.fetched) != 2 {
		t.Errorf("fetched gids = %v, want 2 fetches", fetcher.fetched)
	}
}

// TestLoadSequential verifies sheets are fetched in configuration order,
// one at a time.
func TestLoadSequential(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string]string{
		"1": louangeCSV,
		"2": "Titles\nSong A,Verse: C\n",
	}}
	sheets := []SheetRef{
		{Name: "Louange", GID: "1"},
		{Name: "Progressions", GID: "2"},
	}
	log := testLogger()
	p := NewProvider(fetcher, sheets, extract.New(log, nil), log)

	ds, _, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if fetcher.fetched[0] != "1" || fetcher.fetched[1] != "2" {
		t.Errorf("fetch order = %v", fetcher.fetched)
	}
	if len(ds.Progressions) != 1 {
		t.Errorf("progressions = %v", ds.Progressions)
	}
}

// TestLoadZeroSongsFails verifies an empty repertoire is the one load-level
// failure.
func TestLoadZeroSongsFails(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string]string{"2": "Song A,Verse: C\n"}}
	sheets := []SheetRef{{Name: "Progressions", GID: "2"}}
	log := testLogger()
	p := NewProvider(fetcher, sheets, extract.New(log, nil), log)

	_, _, err := p.Load(context.Background())
	if !errors.Is(err, extract.ErrNoSongs) {
		t.Errorf("err = %v, want ErrNoSongs", err)
	}
}
