package tui

import (
	"strings"

	"github.com/tessro/keyglow/internal/render/glow"
	"github.com/tessro/keyglow/internal/tui/styles"
)

// Glow sizes map to column heights: every rowScale units above glowFloor
// add a row.
const (
	glowFloor = 300
	rowScale  = 25
	MaxRows   = 9
)

type column struct {
	lit   bool
	rows  int
	color [4]float32
}

// Canvas is a glow.RenderPass that rasterizes instances into one column per
// key slot.
type Canvas struct {
	keyWidth float32
	columns  []column
}

// NewCanvas creates a canvas for keys slots of keyWidth units.
func NewCanvas(keys int, keyWidth float32) *Canvas {
	return &Canvas{
		keyWidth: keyWidth,
		columns:  make([]column, keys),
	}
}

// Reset darkens every column. Empty frames are never drawn, so the host
// resets before each render.
func (c *Canvas) Reset() {
	for i := range c.columns {
		c.columns[i] = column{}
	}
}

// DrawInstances replaces the canvas with the given frame.
func (c *Canvas) DrawInstances(data []byte, stride, count int) {
	c.Reset()

	instances, err := glow.DecodeInstances(data, stride)
	if err != nil {
		return
	}
	for _, in := range instances[:min(count, len(instances))] {
		center := in.Position[0] + in.Size[0]/2
		slot := int(center / c.keyWidth)
		if slot < 0 || slot >= len(c.columns) {
			continue
		}
		rows := int((in.Size[0]-glowFloor)/rowScale) + 1
		c.columns[slot] = column{
			lit:   true,
			rows:  max(1, min(rows, MaxRows)),
			color: in.Color,
		}
	}
}

// Lit reports whether slot has glow and how tall it is.
func (c *Canvas) Lit(slot int) (bool, int) {
	col := c.columns[slot]
	return col.lit, col.rows
}

// View renders the glow rows, tallest on top.
func (c *Canvas) View(cellWidth int) string {
	var b strings.Builder
	blank := strings.Repeat(" ", cellWidth)
	for row := MaxRows - 1; row >= 0; row-- {
		for _, col := range c.columns {
			if col.lit && col.rows > row {
				b.WriteString(styles.GlowCell(col.color, cellWidth))
			} else {
				b.WriteString(blank)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
