package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mwaldner/genlab/internal/machine"
	"github.com/mwaldner/genlab/internal/session"
)

const (
	canvasWidth  = 56
	canvasHeight = 18
	chartWindow  = 120
	chartWidth   = 30
	chartHeight  = 5
)

type TickMsg time.Time

// Model is the live view: it owns a session and steps it a small frame
// batch per tick, the way the original page re-ran a few steps per redraw.
type Model struct {
	sess      *session.Session
	gen       *machine.Generator
	frames    int
	canvas    *Canvas
	fieldName string

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	showHelp bool
}

func NewModel(gen *machine.Generator, frames int) Model {
	if frames <= 0 {
		frames = session.DefaultFrameBatch
	}

	params := gen.GetParams()
	initial := make(map[string]float64, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == 0 {
			v = 1e-6
		}
		initial[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		sess:          session.New(gen),
		gen:           gen,
		frames:        frames,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		fieldName:     gen.Field.Name(),
		params:        params,
		initialParams: initial,
		paramKeys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sess.SetRunning(!m.sess.Running())
		case "r":
			m.sess.Reset()
		case "s":
			if !m.sess.Running() {
				m.sess.Step()
			}
		case "left":
			if !m.sess.Running() {
				m.sess.SetAngle(m.sess.Angle() - math.Pi/36)
			}
		case "right":
			if !m.sess.Running() {
				m.sess.SetAngle(m.sess.Angle() + math.Pi/36)
			}
		case "f":
			m.toggleField()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.sess.Running() {
			m.sess.RunFrames(m.frames)
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	m.params[key] = newVal
	m.gen.SetParam(key, newVal)
}

func (m *Model) toggleField() {
	if m.fieldName == "cosine" {
		m.gen.Field = machine.NewDipoleField()
	} else {
		m.gen.Field = machine.CosineField{}
	}
	m.fieldName = m.gen.Field.Name()
}

func tail(data []float64, n int) []float64 {
	if len(data) > n {
		return data[len(data)-n:]
	}
	return data
}

func (m Model) View() string {
	DrawSchematic(m.canvas, m.sess.Angle())
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("DC GENERATOR") + "\n")

	status := "RUNNING"
	if !m.sess.Running() {
		if m.sess.Elapsed() > m.gen.Params.MaxTime {
			status = "DONE"
		} else {
			status = "PAUSED"
		}
	}
	s.WriteString(status + "\n\n")

	if flux := tail(m.sess.Flux(), chartWindow); len(flux) > 1 {
		chart := asciigraph.Plot(flux,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("flux"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if rect := tail(m.sess.Rectified(), chartWindow); len(rect) > 1 {
		chart := asciigraph.Plot(rect,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("dc output"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString("\n")

	angleDeg := math.Mod(m.sess.Angle()*180/math.Pi, 360)
	if angleDeg < 0 {
		angleDeg += 360
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sess.Elapsed())) + "\n")
	s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%.1f°", angleDeg)) + "\n")
	s.WriteString(labelStyle.Render("Field") + valueStyle.Render(m.fieldName) + "\n")

	if n := m.sess.Len(); n > 0 {
		s.WriteString(labelStyle.Render("Flux") + valueStyle.Render(fmt.Sprintf("%.3f Wb", m.sess.Flux()[n-1])) + "\n")
		s.WriteString(labelStyle.Render("EMF") + valueStyle.Render(fmt.Sprintf("%.3f V", m.sess.EMF()[n-1])) + "\n")
		s.WriteString(labelStyle.Render("DC out") + valueStyle.Render(fmt.Sprintf("%.3f V", m.sess.Rectified()[n-1])) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		val, initial := m.params[k], m.initialParams[k]
		barWidth := 10
		ratio := val / (2.0 * initial)
		if ratio > 1 {
			ratio = 1
		} else if ratio < 0 {
			ratio = 0
		}
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-8s %s %.2f", k, bar, val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset S:Step Q:Quit\nF:Field ←→:Turn coil ↑↓:Tune ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset simulation         ║
║  S        - Single step (paused)     ║
║  ←/→      - Turn coil by 5° (paused) ║
║  F        - Toggle field model       ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
