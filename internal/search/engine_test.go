package search

import (
	"testing"

	"github.com/desertthunder/quaver/internal/library"
)

func sampleLibrary() []library.Track {
	return []library.Track{
		{Path: "/m/01.mp3", Title: "Blue Monday", Artist: "New Order", Album: "Power Corruption and Lies"},
		{Path: "/m/02.mp3", Title: "Bizarre Love Triangle", Artist: "New Order", Album: "Brotherhood"},
		{Path: "/m/03.mp3", Title: "Just Like Honey", Artist: "The Jesus and Mary Chain", Album: "Psychocandy"},
		{Path: "/m/04.mp3", Title: "Age of Consent", Artist: "New Order", Album: "Power Corruption and Lies"},
		{Path: "/m/05.mp3", Title: "Blue Bell Knoll", Artist: "Cocteau Twins", Album: "Blue Bell Knoll"},
	}
}

func drain(e *Engine) {
	for !e.Exhausted() {
		e.Poll()
	}
}

func paths(tracks []library.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Path
	}
	return out
}

func TestEngine(t *testing.T) {
	t.Run("empty query returns library in order", func(t *testing.T) {
		engine := NewEngine(0)
		tracks := sampleLibrary()
		engine.SetItems(tracks)

		results := engine.Results()
		if len(results) != len(tracks) {
			t.Fatalf("expected %d results, got %d", len(tracks), len(results))
		}
		for i, track := range tracks {
			if results[i].Path != track.Path {
				t.Errorf("position %d: expected %s, got %s", i, track.Path, results[i].Path)
			}
		}
	})

	t.Run("clearing the query restores the full library", func(t *testing.T) {
		engine := NewEngine(0)
		engine.SetItems(sampleLibrary())

		engine.SetQuery("honey")
		drain(engine)
		if len(engine.Results()) == len(sampleLibrary()) {
			t.Fatal("expected the query to narrow the results")
		}

		engine.SetQuery("")
		if got := len(engine.Results()); got != len(sampleLibrary()) {
			t.Errorf("expected full library after clearing, got %d results", got)
		}
	})

	t.Run("matches any searchable column", func(t *testing.T) {
		engine := NewEngine(0)
		engine.SetItems(sampleLibrary())

		cases := []struct {
			name  string
			query string
			want  string
		}{
			{"title", "monday", "/m/01.mp3"},
			{"artist", "cocteau", "/m/05.mp3"},
			{"album", "psychocandy", "/m/03.mp3"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				engine.SetQuery(tc.query)
				drain(engine)

				got := paths(engine.Results())
				found := false
				for _, p := range got {
					if p == tc.want {
						found = true
					}
				}
				if !found {
					t.Errorf("query %q: expected %s in results, got %v", tc.query, tc.want, got)
				}
			})
		}
	})

	t.Run("non-matching tracks are excluded", func(t *testing.T) {
		engine := NewEngine(0)
		engine.SetItems(sampleLibrary())

		engine.SetQuery("psychocandy")
		drain(engine)

		results := engine.Results()
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %v", paths(results))
		}
		if results[0].Path != "/m/03.mp3" {
			t.Errorf("expected /m/03.mp3, got %s", results[0].Path)
		}
	})

	t.Run("score ties keep library order", func(t *testing.T) {
		engine := NewEngine(0)
		engine.SetItems([]library.Track{
			{Path: "/m/a.mp3", Title: "Echo"},
			{Path: "/m/b.mp3", Title: "Echo"},
			{Path: "/m/c.mp3", Title: "Echo"},
		})

		engine.SetQuery("echo")
		drain(engine)

		got := paths(engine.Results())
		want := []string{"/m/a.mp3", "/m/b.mp3", "/m/c.mp3"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected stable order %v, got %v", want, got)
			}
		}
	})

	t.Run("poll is idempotent once exhausted", func(t *testing.T) {
		engine := NewEngine(0)
		engine.SetItems(sampleLibrary())
		engine.SetQuery("blue")
		drain(engine)

		first := paths(engine.Results())
		engine.Poll()
		engine.Poll()
		second := paths(engine.Results())

		if len(first) != len(second) {
			t.Fatalf("results changed across redundant polls: %v vs %v", first, second)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("results changed across redundant polls: %v vs %v", first, second)
			}
		}
	})

	t.Run("same query text is a no-op", func(t *testing.T) {
		engine := NewEngine(0)
		engine.SetItems(sampleLibrary())
		engine.SetQuery("blue")
		drain(engine)

		engine.SetQuery("blue")
		if !engine.Exhausted() {
			t.Error("expected re-setting the same query to keep the finished computation")
		}
	})

	t.Run("work is bounded per poll", func(t *testing.T) {
		engine := NewEngine(2)
		engine.SetItems(sampleLibrary())
		engine.SetQuery("new order")

		engine.Poll()
		if engine.Exhausted() {
			t.Fatal("expected more work after one small poll")
		}

		drain(engine)
		if !engine.Exhausted() {
			t.Fatal("expected the computation to finish")
		}
		if len(engine.Results()) == 0 {
			t.Error("expected matches for an artist query")
		}
	})

	t.Run("partial results grow monotonically", func(t *testing.T) {
		engine := NewEngine(1)
		engine.SetItems(sampleLibrary())
		engine.SetQuery("blue")

		var sizes []int
		for !engine.Exhausted() {
			engine.Poll()
			sizes = append(sizes, len(engine.Results()))
		}
		for i := 1; i < len(sizes); i++ {
			if sizes[i] < sizes[i-1] {
				t.Fatalf("partial result count shrank: %v", sizes)
			}
		}
	})

	t.Run("editing the query discards stale partials", func(t *testing.T) {
		engine := NewEngine(1)
		engine.SetItems(sampleLibrary())

		engine.SetQuery("blue")
		engine.Poll() // scores only Blue Monday
		engine.SetQuery("honey")
		drain(engine)

		for _, p := range paths(engine.Results()) {
			if p == "/m/01.mp3" {
				t.Error("stale match from a superseded query leaked into results")
			}
		}
	})

	t.Run("replacing items re-runs the query", func(t *testing.T) {
		engine := NewEngine(0)
		engine.SetItems(sampleLibrary())
		engine.SetQuery("honey")
		drain(engine)

		engine.SetItems([]library.Track{
			{Path: "/m/new.mp3", Title: "Honey Power", Artist: "My Bloody Valentine"},
		})
		drain(engine)

		got := paths(engine.Results())
		if len(got) != 1 || got[0] != "/m/new.mp3" {
			t.Errorf("expected the query re-run over new items, got %v", got)
		}
	})
}
