package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dotfield/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille dot canvas sized in terminal cells. It implements
// field.Painter: world coordinates are scaled by Fit, and each cell takes
// the color of the last particle painted into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color

	scaleX, scaleY float64
	styles         map[string]lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]colorful.Color, h),
		scaleX: 1,
		scaleY: 1,
		styles: make(map[string]lipgloss.Style),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-cell dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Fit scales world coordinates of ext onto the whole canvas.
func (c *Canvas) Fit(ext field.Extent) {
	if !ext.Valid() {
		return
	}
	dw, dh := c.Dots()
	c.scaleX = float64(dw) / ext.Width
	c.scaleY = float64(dh) / ext.Height
}

// Set sets the dot at (x, y). The canvas is Width*2 by Height*4 dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = colorful.Color{}
		}
	}
}

// Circle fills the dots covered by a disk in world coordinates. A disk
// smaller than a dot still sets the dot under its center.
func (c *Canvas) Circle(center field.Vec, radius float64, col colorful.Color) {
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := radius*c.scaleX, radius*c.scaleY

	c.paint(int(math.Floor(cx)), int(math.Floor(cy)), col)
	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				c.paint(x, y, col)
			}
		}
	}
}

func (c *Canvas) paint(x, y int, col colorful.Color) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	c.Colors[y/4][x/2] = col
}

// ToWorld maps a terminal cell to the world coordinates of its center.
func (c *Canvas) ToWorld(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) * 2 / c.scaleX
	y := (float64(row) + 0.5) * 4 / c.scaleY
	return x, y
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the canvas with per-cell foreground colors.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			b.WriteString(c.style(c.Colors[i][j]).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) style(col colorful.Color) lipgloss.Style {
	hex := col.Clamped().Hex()
	s, ok := c.styles[hex]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		c.styles[hex] = s
	}
	return s
}
