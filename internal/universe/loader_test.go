package universe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const marketWatchCSV = "\ufeff\"Market Watch\",\"\",\"\"\n" +
	"\"As on 30-Aug-2026\",\"\",\"\"\n" +
	"\"SYMBOL\",\"NAME OF COMPANY\",\"LTP\"\n" +
	"\"RELIANCE\",\"Reliance Industries\",\"2950.10\"\n" +
	"\"TCS\",\"Tata Consultancy Services\",\"4100.00\"\n" +
	"\"NIFTY 50\",\"Index\",\"24500.00\"\n" +
	"\"M&M\",\"Mahindra &amp; Mahindra\",\"2890.55\"\n" +
	"\"-\",\"\",\"\"\n"

func writeUniverse(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadParsesMarketWatchExport(t *testing.T) {
	dir := writeUniverse(t, map[string]string{"watch.csv": marketWatchCSV})

	got, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"M&M.NS", "RELIANCE.NS", "TCS.NS"}
	if len(got) != len(want) {
		t.Fatalf("loaded %d instruments %v, want %v", len(got), got, want)
	}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Errorf("instrument[%d] = %s, want %s", i, got[i].Symbol, sym)
		}
	}
	if got[0].Name != "mahindra & mahindra" {
		t.Errorf("name = %q, want lowercase company name", got[0].Name)
	}
	if got[1].Name != "reliance industries" {
		t.Errorf("name = %q, want lowercase company name", got[1].Name)
	}
}

func TestLoadDeduplicatesAcrossFiles(t *testing.T) {
	dir := writeUniverse(t, map[string]string{
		"a.csv": "SYMBOL,NAME\nRELIANCE,Reliance\n",
		"b.csv": "SYMBOL,NAME\nRELIANCE,Reliance\nTCS,TCS\n",
	})

	got, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("loaded %v, want RELIANCE.NS and TCS.NS once each", got)
	}
}

func TestLoadSkipsMalformedFile(t *testing.T) {
	dir := writeUniverse(t, map[string]string{
		"good.csv": "SYMBOL,NAME\nTCS,TCS\n",
		"junk.csv": "no header at all\njust,noise\n",
	})

	got, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Symbol != "TCS.NS" {
		t.Errorf("loaded %v, want only TCS.NS", got)
	}
}

func TestLoadEmptyUniverseIsFatal(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(context.Background(), dir); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}
