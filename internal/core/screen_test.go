package core

import (
	"strings"
	"testing"
)

// cellsEqual fails on the first cell in r that does not hold want.
func cellsEqual(t *testing.T, s *Screen, r Rect, want rune) {
	t.Helper()
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if got := s.Get(x, y); got != want {
				t.Fatalf("cell (%d, %d) = %q, expected %q", x, y, got, want)
			}
		}
	}
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(27, 12)
	if s.Width() != 27 || s.Height() != 12 {
		t.Fatalf("size = %dx%d, expected 27x12", s.Width(), s.Height())
	}
	cellsEqual(t, s, NewRect(0, 0, 27, 12), ' ')
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(8, 4)

	for _, p := range [][2]int{{-1, 0}, {8, 0}, {0, -1}, {0, 4}} {
		s.Set(p[0], p[1], '█')
		if got := s.Get(p[0], p[1]); got != ' ' {
			t.Errorf("Get(%d, %d) = %q, expected space off screen", p[0], p[1], got)
		}
	}
	cellsEqual(t, s, NewRect(0, 0, 8, 4), ' ')

	s.DrawText(6, 0, "Score")
	if got := s.Row(0); got != "      Sc" {
		t.Errorf("Row(0) = %q, expected text clipped at the right edge", got)
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name  string
		draw  func(s *Screen)
		check func(t *testing.T, s *Screen)
	}{
		{
			name: "fill then clear",
			draw: func(s *Screen) {
				s.Fill('▓')
				s.Clear()
			},
			check: func(t *testing.T, s *Screen) {
				cellsEqual(t, s, NewRect(0, 0, 12, 6), ' ')
			},
		},
		{
			name: "rect fills its cells only",
			draw: func(s *Screen) { s.DrawRect(NewRect(3, 1, 2, 4), '█') },
			check: func(t *testing.T, s *Screen) {
				cellsEqual(t, s, NewRect(3, 1, 2, 4), '█')
				if s.Get(2, 1) != ' ' || s.Get(5, 1) != ' ' || s.Get(3, 5) != ' ' {
					t.Error("DrawRect leaked outside its rectangle")
				}
			},
		},
		{
			name: "horizontal line",
			draw: func(s *Screen) { s.DrawHLine(1, 3, 6, '─') },
			check: func(t *testing.T, s *Screen) {
				cellsEqual(t, s, NewRect(1, 3, 6, 1), '─')
				if s.Get(7, 3) != ' ' {
					t.Error("DrawHLine drew past its length")
				}
			},
		},
		{
			name: "centered text",
			draw: func(s *Screen) { s.DrawTextCentered(2, "FLAPPY") },
			check: func(t *testing.T, s *Screen) {
				if got := s.Row(2); got != "   FLAPPY   " {
					t.Errorf("Row(2) = %q", got)
				}
			},
		},
		{
			name: "multi-byte text takes one cell per rune",
			draw: func(s *Screen) { s.DrawTextCentered(0, "▲●➤") },
			check: func(t *testing.T, s *Screen) {
				if got := s.Row(0); got != "    ▲●➤     " {
					t.Errorf("Row(0) = %q", got)
				}
			},
		},
		{
			name: "box outline",
			draw: func(s *Screen) { s.DrawBox(NewRect(1, 1, 5, 4)) },
			check: func(t *testing.T, s *Screen) {
				want := []string{
					"            ",
					" ┌───┐      ",
					" │   │      ",
					" │   │      ",
					" └───┘      ",
					"            ",
				}
				if got := s.String(); got != strings.Join(want, "\n") {
					t.Errorf("String() =\n%s", got)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(12, 6)
			tc.draw(s)
			tc.check(t, s)
		})
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(3, 2, '●', ColorYellow)
	if cell := s.GetCell(3, 2); cell.Rune != '●' || cell.Color != ColorYellow {
		t.Errorf("GetCell(3, 2) = %+v, expected yellow '●'", cell)
	}

	s.DrawRectColored(NewRect(0, 3, 10, 2), '▓', ColorOrange)
	for x := 0; x < 10; x++ {
		if s.GetCell(x, 4).Color != ColorOrange {
			t.Fatalf("DrawRectColored missed (%d, 4)", x)
		}
	}

	s.Clear()
	if s.GetCell(3, 2).Color != ColorDefault || s.GetCell(0, 4).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 0, "Best: 12")
	s.DrawText(0, 5, "floor")

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Best: " {
		t.Errorf("Row(0) = %q after shrinking", got)
	}

	s.Resize(12, 8)
	if got := s.Row(0); !strings.HasPrefix(got, "Best: ") {
		t.Errorf("Row(0) = %q after growing", got)
	}
	if got := s.Row(5); got != strings.Repeat(" ", 12) {
		t.Errorf("Row(5) = %q, expected cropped content to stay gone", got)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	if got := s.Row(-1); got != "    " {
		t.Errorf("Row(-1) = %q, expected blanks", got)
	}
	if got := s.Row(2); got != "    " {
		t.Errorf("Row(2) = %q, expected blanks", got)
	}
}
