package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if row := s.Row(y); row != strings.Repeat(" ", 80) {
			t.Fatalf("row %d not blank: %q", y, row)
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)

	s.SetColored(1, 1, '@', ColorCyan)
	if c := s.GetCell(1, 1); c.Rune != '@' || c.Color != ColorCyan {
		t.Errorf("GetCell = %+v, expected cyan @", c)
	}

	s.Set(1, 1, '#')
	if c := s.GetCell(1, 1); c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", c.Color)
	}

	s.DrawTextColored(0, 0, "hi", ColorRed)
	if s.GetCell(1, 0).Color != ColorRed {
		t.Error("DrawTextColored should color every rune")
	}

	if c := s.GetCell(-1, -1); c != blank {
		t.Errorf("out of bounds GetCell = %+v, expected blank", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawRect(NewRect(0, 0, 4, 2), 'X')
	s.Clear()

	if s.String() != "    \n    " {
		t.Errorf("String() after Clear = %q", s.String())
	}
}

func TestScreenDrawTextUnicode(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "██→x")

	if s.Get(2, 0) != '→' || s.Get(3, 0) != 'x' {
		t.Errorf("multi-byte runes misplaced: %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "TEST", ColorDefault)

	if s.Row(0) != "   TEST   " {
		t.Errorf("centered row = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorYellow)

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("box = %q, expected %q", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorYellow {
		t.Error("box outline should use the given color")
	}
}

func TestScreenMessage(t *testing.T) {
	s := NewScreen(30, 9)
	s.Message("PAUSED", ColorDefault, "Press P to resume")

	out := s.String()
	if !strings.Contains(out, "PAUSED") || !strings.Contains(out, "Press P to resume") {
		t.Errorf("message missing text:\n%s", out)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(0, 0, 'A')

	s.Resize(20, 5)
	if s.Width() != 20 || s.Height() != 5 {
		t.Fatalf("size = %dx%d, expected 20x5", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should blank the buffer")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "Hello")

	if s.Row(0) != "Hello" {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.Row(7) != "     " {
		t.Errorf("out of bounds Row = %q", s.Row(7))
	}
}
