// Package tui is the slider dashboard. Every keypress that changes the
// configuration re-runs the generator and the estimator to completion.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/measim/internal/config"
	"github.com/san-kum/measim/internal/experiment"
	"github.com/san-kum/measim/internal/sampler"
	"github.com/san-kum/measim/internal/viz"
)

type view int

const (
	viewAttenuation view = iota
	viewPairs
	viewSummary
	numViews
)

func (v view) String() string {
	switch v {
	case viewAttenuation:
		return "attenuation"
	case viewPairs:
		return "Y~X / X~Z"
	case viewSummary:
		return "summary"
	}
	return ""
}

var fieldLabels = map[config.Field]string{
	config.FieldN:         "n",
	config.FieldBeta:      "β",
	config.FieldSigmaTrue: "σ true",
	config.FieldSigmaME:   "σ ME",
	config.FieldSigmaEps:  "σ ε",
	config.FieldP:         "p(D=1)",
}

// Row 0 is the model selector, rows 1.. are config.Fields.
const modelRow = 0

type model struct {
	cfg    *config.Config
	cursor int
	view   view
	// preset indexes config.ListPresets; -1 until one is applied.
	preset int

	result *experiment.Result
	err    error
	log    logrus.FieldLogger

	width  int
	height int
	colour bool
}

func newModel(cfg *config.Config, log logrus.FieldLogger) model {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := model{
		cfg:    cfg,
		preset: -1,
		log:    log,
		width:  cfg.Display.Width + 40,
		height: cfg.Display.Height + 14,
		colour: true,
	}
	m.rerun()
	return m
}

// Run starts the dashboard on cfg and blocks until the user quits.
func Run(cfg *config.Config, log logrus.FieldLogger) error {
	cfg.Clamp()
	p := tea.NewProgram(newModel(cfg, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(config.Fields) {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "m":
		m.cycleModel(1)
	case "M":
		m.modelPreset()
	case "tab":
		m.view = (m.view + 1) % numViews
	case "shift+tab":
		m.view = (m.view + numViews - 1) % numViews
	case "r":
		m.cfg.Seed++
		m.rerun()
	case "p":
		m.nextPreset()
	case "c":
		m.colour = !m.colour
	}
	return m, nil
}

func (m *model) adjust(dir int) {
	if m.cursor == modelRow {
		m.cycleModel(dir)
		return
	}
	m.cfg.Step(config.Fields[m.cursor-1], dir)
	m.rerun()
}

func (m *model) cycleModel(dir int) {
	cur, err := sampler.ParseModel(m.cfg.Model)
	if err != nil {
		cur = sampler.Classical
	}
	idx := 0
	for i, mod := range sampler.Models {
		if mod == cur {
			idx = i
		}
	}
	n := len(sampler.Models)
	m.cfg.Model = sampler.Models[(idx+dir+n)%n].String()
	m.rerun()
}

func (m *model) nextPreset() {
	names := config.ListPresets()
	m.applyPreset(names[(m.preset+1)%len(names)])
}

// modelPreset switches to the uniform design, quadratic outcome scenario
// of the current noise model.
func (m *model) modelPreset() {
	if name := config.PresetForModel(m.currentModel().String()); name != "" {
		m.applyPreset(name)
	}
}

func (m *model) applyPreset(name string) {
	p := config.GetPreset(name)
	if p == nil {
		return
	}
	for i, n := range config.ListPresets() {
		if n == name {
			m.preset = i
		}
	}
	p.Display = m.cfg.Display
	*m.cfg = *p
	m.rerun()
}

// rerun replaces the held result with a fresh run of the current config.
func (m *model) rerun() {
	sc, err := m.cfg.Sampler()
	if err != nil {
		m.result, m.err = nil, err
		return
	}
	m.result, m.err = experiment.New(sc, m.cfg.Seed).WithLogger(m.log).Run(context.Background())
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(viz.Title.Render("measim") + "  " +
		viz.Subtle.Render("measurement error in explanatory variables") + "\n\n")

	controls := m.viewControls()
	var body string
	switch {
	case m.err != nil:
		body = viz.ErrorText.Render("error: " + m.err.Error())
	case m.result == nil:
		body = viz.Subtle.Render("no sample")
	default:
		body = m.viewBody()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, controls, "  ", body))

	b.WriteString("\n\n" + viz.KeyHint.Render(
		"↑↓ select  ←→ adjust  m model  M model scenario  p preset  r reseed  tab view  c colour  q quit") + "\n")
	return b.String()
}

func (m model) viewControls() string {
	var lines []string

	label := func(row int, name string) string {
		if row == m.cursor {
			return viz.Selected.Render(fmt.Sprintf("▸ %-8s", name))
		}
		return viz.MetricLabel.Render(fmt.Sprintf("  %-8s", name))
	}

	info := experiment.Describe(m.currentModel())
	lines = append(lines, label(modelRow, "model")+" "+viz.MetricValue.Render(info.Title))
	lines = append(lines, viz.Subtle.Render("  "+info.Description), "")

	for i, f := range config.Fields {
		r := config.Bounds[f]
		v := m.cfg.Get(f)
		frac := (v - r.Min) / (r.Max - r.Min)
		val := fmt.Sprintf("%6.2f", v)
		if f == config.FieldN {
			val = fmt.Sprintf("%6d", m.cfg.Sample.N)
		}
		lines = append(lines, label(i+1, fieldLabels[f])+" "+viz.SliderBar(frac, 14)+" "+viz.MetricValue.Render(val))
	}

	lines = append(lines, "",
		viz.Metric("design", m.cfg.Design+" / "+m.cfg.Outcome),
		viz.Metric("seed", fmt.Sprintf("%d", m.cfg.Seed)),
		viz.Metric("view", m.view.String()),
	)
	if m.result != nil {
		lines = append(lines, viz.Metric("hash", fmt.Sprintf("%016x", m.result.Fingerprint)))
	}
	return viz.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m model) currentModel() sampler.Model {
	mod, err := sampler.ParseModel(m.cfg.Model)
	if err != nil {
		return sampler.Classical
	}
	return mod
}

func (m model) plotSize(panels int) (cols, rows int) {
	cols = (m.width-44)/panels - 4
	rows = m.height - 16
	if cols < 20 {
		cols = 20
	}
	if rows < 6 {
		rows = 6
	}
	return cols, rows
}

func (m model) viewBody() string {
	r := m.result
	summary := viz.FitSummary(r.Fit)

	switch m.view {
	case viewPairs:
		cols, rows := m.plotSize(2)
		return lipgloss.JoinVertical(lipgloss.Left, viz.PairPlot(r.Sample, cols, rows, m.colour), summary)
	case viewSummary:
		return lipgloss.JoinVertical(lipgloss.Left, summary, "", viz.SampleSummary(r.Summary))
	}
	cols, rows := m.plotSize(1)
	return lipgloss.JoinVertical(lipgloss.Left, viz.AttenuationPlot(r.Sample, r.Config, r.Fit, cols, rows, m.colour), summary)
}
