package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/storage"
)

func TestPrintSummary(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := printSummary(&buf, store); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("empty summary:\n%s", buf.String())
	}

	for _, r := range []storage.Result{
		{GameID: "match3_hex", Score: 480, BestCombo: 4},
		{GameID: "match3", Score: 120, BestCombo: 2},
		{GameID: "match3", Score: 360, BestCombo: 3},
		{GameID: "retired", Score: 10, BestCombo: 2},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatal(err)
		}
	}

	buf.Reset()
	if err := printSummary(&buf, store); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	classic := strings.Index(out, "Match-3     ")
	hex := strings.Index(out, "Match-3 Hex")
	retired := strings.Index(out, "retired")
	if classic < 0 || hex < 0 || retired < 0 {
		t.Fatalf("summary is missing variants:\n%s", out)
	}
	if !(classic < hex && hex < retired) {
		t.Errorf("summary out of order:\n%s", out)
	}
	if !strings.Contains(out, "360") || !strings.Contains(out, "x4") {
		t.Errorf("summary lost stats:\n%s", out)
	}
}
