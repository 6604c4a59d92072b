package library

import "testing"

func TestTrack(t *testing.T) {
	t.Run("Equal compares by path only", func(t *testing.T) {
		a := Track{Path: "/m/a.mp3", Title: "One"}
		b := Track{Path: "/m/a.mp3", Title: "Completely different tags"}
		c := Track{Path: "/m/c.mp3", Title: "One"}

		if !a.Equal(b) {
			t.Error("expected same path to compare equal")
		}
		if a.Equal(c) {
			t.Error("expected different paths to compare unequal")
		}
	})

	t.Run("DisplayTitle falls back to the filename", func(t *testing.T) {
		tagged := Track{Path: "/m/untitled.mp3", Title: "Real Title"}
		if got := tagged.DisplayTitle(); got != "Real Title" {
			t.Errorf("expected tag title, got %q", got)
		}

		untagged := Track{Path: "/m/sub/untitled.mp3"}
		if got := untagged.DisplayTitle(); got != "untitled.mp3" {
			t.Errorf("expected filename fallback, got %q", got)
		}
	})

	t.Run("DisplayDuration renders minutes and seconds", func(t *testing.T) {
		cases := []struct {
			secs int
			want string
		}{
			{0, "0:00"},
			{7, "0:07"},
			{61, "1:01"},
			{754, "12:34"},
		}
		for _, tc := range cases {
			if got := (Track{Duration: tc.secs}).DisplayDuration(); got != tc.want {
				t.Errorf("%d secs: expected %q, got %q", tc.secs, tc.want, got)
			}
		}
	})
}
