package news

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	name      string
	headlines []string
	err       error
	block     bool
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) ([]string, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.headlines, f.err
}

func TestHeadlinesToleratesFailingSource(t *testing.T) {
	p := NewProviderWithSources(time.Second,
		&fakeSource{name: "ok", headlines: []string{"markets rally", "rupee steady"}},
		&fakeSource{name: "broken", err: errors.New("http 503")},
		&fakeSource{name: "also-ok", headlines: []string{"gold slips"}},
	)

	got := p.Headlines(context.Background())
	want := []string{"markets rally", "rupee steady", "gold slips"}
	if len(got) != len(want) {
		t.Fatalf("Headlines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Headlines[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHeadlinesTimesOutSlowSource(t *testing.T) {
	p := NewProviderWithSources(50*time.Millisecond,
		&fakeSource{name: "hung", block: true},
		&fakeSource{name: "fast", headlines: []string{"ok"}},
	)

	start := time.Now()
	got := p.Headlines(context.Background())
	if time.Since(start) > time.Second {
		t.Fatal("slow source was not bounded by the per-source timeout")
	}
	if len(got) != 1 || got[0] != "ok" {
		t.Errorf("Headlines = %v, want [ok]", got)
	}
}

func TestHeadlinesAllSourcesEmpty(t *testing.T) {
	p := NewProviderWithSources(time.Second,
		&fakeSource{name: "keyless"},
	)
	if got := p.Headlines(context.Background()); len(got) != 0 {
		t.Errorf("Headlines = %v, want none", got)
	}
}
