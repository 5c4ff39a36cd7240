package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout"
)

// Canvas styles
var (
	canvasNodeStyle    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	canvasSettledStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	canvasEdgeStyle    = lipgloss.NewStyle().Foreground(colorDim)
	canvasLabelStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// frameMsg asks the model to pump one simulation frame.
type frameMsg time.Time

// =============================================================================
// watchModel - Live simulation view
// =============================================================================

// watchModel is the bubbletea model for the watch command. Each frame it
// fires the manual scheduler, which runs whatever step the engine has
// queued, then draws the controller's current snapshot.
type watchModel struct {
	ctrl     *layout.Controller
	sched    *layout.ManualScheduler
	input    string
	engine   string
	interval time.Duration

	width    int
	height   int
	frames   int
	quitting bool
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.ctrl.Stop()
			return m, tea.Quit
		case "r":
			_ = m.ctrl.Relayout()
		case "x":
			_ = m.ctrl.Reset()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case frameMsg:
		// Ticks keep coming after the engine settles; firing an empty
		// scheduler is free and keeps reheat keys responsive.
		m.sched.Fire()
		m.frames++
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	cols, rows := m.width, m.height-3
	if cols < 20 || rows < 5 {
		return StyleDim.Render("terminal too small")
	}

	snap := m.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Watching "+m.input) + StyleDim.Render("  "+m.engine+" engine"))
	b.WriteString("\n")
	b.WriteString(plotLayout(snap, cols, rows))
	b.WriteString("\n")
	b.WriteString(m.statusLine(snap))
	return b.String()
}

// statusLine renders the bottom bar: lifecycle state, counts, frame
// counter, and key help.
func (m watchModel) statusLine(snap graph.Layout) string {
	state := m.ctrl.State().String()
	stateStyle := styleComputed
	if snap.Settled {
		stateStyle = styleCached
	}

	left := fmt.Sprintf(" %s · %d nodes · %d edges · frame %d",
		stateStyle.Render(state), len(snap.Nodes), len(snap.Edges), m.frames)
	help := "r reheat  x reset  q quit "

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(help)
	if pad < 1 {
		pad = 1
	}
	return StyleDim.Render(left) + strings.Repeat(" ", pad) + StyleDim.Render(help)
}

// =============================================================================
// Canvas
// =============================================================================

// Cell kinds, in paint order: later kinds overwrite earlier ones.
const (
	cellEmpty = iota
	cellEdge
	cellLabel
	cellNode
)

// canvas is a terminal-sized grid the layout is painted onto.
type canvas struct {
	cols, rows int
	chars      []rune
	kinds      []uint8
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{
		cols:  cols,
		rows:  rows,
		chars: make([]rune, cols*rows),
		kinds: make([]uint8, cols*rows),
	}
	for i := range c.chars {
		c.chars[i] = ' '
	}
	return c
}

// set paints ch at (col, row) unless something of a higher kind is there.
func (c *canvas) set(col, row int, ch rune, kind uint8) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	i := row*c.cols + col
	if c.kinds[i] >= kind && c.kinds[i] != cellEmpty {
		return
	}
	c.chars[i] = ch
	c.kinds[i] = kind
}

// cell maps a render-space position to a grid cell. Render space is y-up
// while rows grow downward, so the y axis flips.
func (c *canvas) cell(x, y float64) (col, row int) {
	col = int(math.Round((x + 1) / 2 * float64(c.cols-1)))
	row = int(math.Round((1 - y) / 2 * float64(c.rows-1)))
	return col, row
}

// line paints a straight edge between two cells.
func (c *canvas) line(c0, r0, c1, r1 int) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	err := dc + dr
	for {
		c.set(c0, r0, '·', cellEdge)
		if c0 == c1 && r0 == r1 {
			return
		}
		if e2 := 2 * err; e2 >= dr {
			if c0 == c1 {
				return
			}
			err += dr
			c0 += sc
		} else {
			if r0 == r1 {
				return
			}
			err += dc
			r0 += sr
		}
	}
}

// render styles each cell and joins the grid into screen lines.
func (c *canvas) render(settled bool) string {
	nodeStyle := canvasNodeStyle
	if settled {
		nodeStyle = canvasSettledStyle
	}

	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := c.chars[row*c.cols : (row+1)*c.cols]
		kinds := c.kinds[row*c.cols : (row+1)*c.cols]

		// Emit runs of equal kind so styling does not wrap every cell.
		start := 0
		for col := 1; col <= c.cols; col++ {
			if col < c.cols && kinds[col] == kinds[start] {
				continue
			}
			run := string(line[start:col])
			switch kinds[start] {
			case cellNode:
				b.WriteString(nodeStyle.Render(run))
			case cellEdge:
				b.WriteString(canvasEdgeStyle.Render(run))
			case cellLabel:
				b.WriteString(canvasLabelStyle.Render(run))
			default:
				b.WriteString(run)
			}
			start = col
		}
	}
	return b.String()
}

// plotLayout draws the layout onto a cols x rows character grid. Edges
// paint first, then labels, then nodes, so a node always stays visible.
func plotLayout(l graph.Layout, cols, rows int) string {
	c := newCanvas(cols, rows)

	pos := make(map[int][2]int, len(l.Nodes))
	for _, n := range l.Nodes {
		col, row := c.cell(n.X, n.Y)
		pos[n.Index] = [2]int{col, row}
	}

	for _, e := range l.Edges {
		p0, ok0 := pos[e.Source]
		p1, ok1 := pos[e.Target]
		if !ok0 || !ok1 {
			continue
		}
		c.line(p0[0], p0[1], p1[0], p1[1])
	}

	for _, n := range l.Nodes {
		p := pos[n.Index]
		for i, ch := range truncateLabel(n.Label, 10) {
			c.set(p[0]+2+i, p[1], ch, cellLabel)
		}
		c.set(p[0], p[1], '●', cellNode)
	}

	return c.render(l.Settled)
}

func truncateLabel(s string, max int) []rune {
	r := []rune(s)
	if len(r) <= max {
		return r
	}
	return append(r[:max-1], '…')
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
