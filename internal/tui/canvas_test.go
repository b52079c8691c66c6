package tui

import (
	"strings"
	"testing"

	"github.com/tessro/keyglow/internal/render/glow"
)

func frameBytes(instances ...glow.Instance) []byte {
	var b []byte
	for _, in := range instances {
		b = in.AppendBinary(b, true)
	}
	return b
}

func TestCanvasDrawInstances(t *testing.T) {
	c := NewCanvas(4, 40)

	// A fresh burst is 500 units wide, centered on slot 2.
	big := glow.Instance{
		Position: [2]float32{2*40 + 20 - 250, -250},
		Size:     [2]float32{500, 500},
		Color:    [4]float32{1, 0.5, 0.2, 0.8},
	}
	small := glow.Instance{
		Position: [2]float32{20 - 175, -175},
		Size:     [2]float32{350, 350},
		Color:    [4]float32{1, 1, 1, 0.8},
	}
	c.DrawInstances(frameBytes(big, small), glow.StrideTimed, 2)

	if lit, rows := c.Lit(2); !lit || rows != MaxRows {
		t.Errorf("Lit(2) = %v, %d, want true, %d", lit, rows, MaxRows)
	}
	if lit, rows := c.Lit(0); !lit || rows != 3 {
		t.Errorf("Lit(0) = %v, %d, want true, 3", lit, rows)
	}
	if lit, _ := c.Lit(1); lit {
		t.Error("Lit(1) = true, want false")
	}

	// The next frame replaces the previous one.
	c.DrawInstances(nil, glow.StrideTimed, 0)
	if lit, _ := c.Lit(2); lit {
		t.Error("Lit(2) after empty frame = true, want false")
	}
}

func TestCanvasIgnoresOffscreen(t *testing.T) {
	c := NewCanvas(2, 40)
	off := glow.Instance{
		Position: [2]float32{400, 0},
		Size:     [2]float32{350, 350},
	}
	c.DrawInstances(frameBytes(off), glow.StrideTimed, 1)
	for i := range 2 {
		if lit, _ := c.Lit(i); lit {
			t.Errorf("Lit(%d) = true, want false", i)
		}
	}
}

func TestCanvasView(t *testing.T) {
	c := NewCanvas(3, 40)
	view := c.View(2)
	if got := strings.Count(view, "\n"); got != MaxRows {
		t.Errorf("View() has %d lines, want %d", got, MaxRows)
	}
	if strings.TrimSpace(view) != "" {
		t.Errorf("View() of empty canvas = %q, want blanks", view)
	}
}
