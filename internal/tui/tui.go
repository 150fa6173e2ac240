package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/tatianab/wealth-quest/internal/autopilot"
	"github.com/tatianab/wealth-quest/internal/i18n"
	"github.com/tatianab/wealth-quest/internal/log"
	"github.com/tatianab/wealth-quest/internal/models"
	"github.com/tatianab/wealth-quest/internal/money"
	"github.com/tatianab/wealth-quest/internal/scheduler"
	"github.com/tatianab/wealth-quest/internal/session"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateChoosing
	stateAmount
)

type action int

const (
	actionBuy action = iota
	actionRepay
	actionBorrow
	actionLearn
)

type option struct {
	id    string
	label string
}

// Config wires the TUI to a running game.
type Config struct {
	Session    *session.Session
	Translator *i18n.Translator
	Formatter  *money.Formatter
	Labels     *i18n.Labeler
	Autopilot  autopilot.Policy
	// Scheduler, when set, is started with the program and its ticks
	// refresh the screen.
	Scheduler *scheduler.Scheduler
	Logger    *log.Logger
}

type model struct {
	state     sessionState
	action    action
	options   []option
	target    string
	cfg       Config
	labels    *i18n.Labeler
	textInput textinput.Model
	viewport  viewport.Model
	status    string
	width     int
	height    int
}

var (
	earningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD787"))

	expenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F")).
			Bold(true)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

type tickMsg scheduler.Tick

func NewModel(cfg Config) model {
	if cfg.Logger == nil {
		cfg.Logger = log.Discard()
	}
	cfg.Logger = cfg.Logger.WithComponent(log.ComponentTUI)

	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20

	return model{
		state:     statePlaying,
		cfg:       cfg,
		labels:    cfg.Labels,
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.state == statePlaying {
				return m, tea.Quit
			}
			m.state = statePlaying
			m.textInput.Blur()
			m.status = ""
			return m, nil
		}

		switch m.state {
		case stateAmount:
			if msg.Type == tea.KeyEnter {
				m.submitAmount()
				m.refresh()
				return m, nil
			}
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		case stateChoosing:
			return m.choose(msg.String())
		}
		return m.play(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.6)
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, msg.Height-6)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 6
		}
		m.refresh()

	case tickMsg:
		m.status = m.labels.Text("tui.autoplay", map[string]any{"month": msg.Report.Month + 1})
		m.refresh()
	}

	return m, nil
}

// play handles the dashboard keys.
func (m model) play(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.cfg.Session
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "n":
		_, r := sess.Advance()
		m.status = m.labels.Text("tui.month", map[string]any{"month": r.Month + 1})

	case "b":
		var opts []option
		for _, a := range sess.State().Assets {
			opts = append(opts, option{a.ID, fmt.Sprintf("%s @ %s", m.labels.Name("assets", a.ID, "", a.Name), m.labels.Money(a.Value))})
		}
		m.startChoice(actionBuy, "tui.chooseAsset", opts)

	case "r":
		var opts []option
		for _, d := range models.SortDebts(models.ActiveDebts(sess.State().Debts), models.Avalanche) {
			opts = append(opts, option{d.ID, fmt.Sprintf("%s %s (%.1f%%)", m.labels.Name("loans", d.ID, "", d.Name), m.labels.Money(d.Principal), d.InterestRate*100)})
		}
		m.startChoice(actionRepay, "tui.chooseDebt", opts)

	case "l":
		var opts []option
		for _, l := range sess.Engine().Catalog().Loans {
			opts = append(opts, option{l.ID, fmt.Sprintf("%s ≤ %s (%.0f%%)", m.labels.Name("loans", l.ID, "", l.Name), m.labels.Money(l.MaxAmount), l.InterestRate*100)})
		}
		m.startChoice(actionBorrow, "tui.chooseLoan", opts)

	case "s":
		state := sess.State()
		var opts []option
		for _, sk := range sess.Engine().Catalog().Skills {
			opts = append(opts, option{sk.ID, fmt.Sprintf("%s Lv %d/%d · %d XP", m.labels.Name("skills", sk.ID, "name", sk.Name), state.SkillLevel(sk.ID), sk.MaxLevel, sk.Cost)})
		}
		m.startChoice(actionLearn, "tui.chooseSkill", opts)

	case "p":
		cat := sess.Engine().Catalog()
		if _, ok := sess.Promote(cat.JobIndex(sess.State().Income.Job.ID) + 1); !ok {
			m.status = m.labels.Text("tui.rejected", nil)
		}

	case "a":
		sess.Apply(m.cfg.Autopilot.Step)
		m.status = m.labels.Text("tui.autopilot", nil)

	case "c":
		m.cycleCurrency()

	case "g":
		m.cycleLanguage()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m *model) startChoice(a action, prompt string, opts []option) {
	if len(opts) == 0 {
		m.status = m.labels.Text("tui.rejected", nil)
		return
	}
	m.state = stateChoosing
	m.action = a
	m.options = opts
	m.status = m.labels.Text(prompt, nil)
}

func (m model) choose(key string) (tea.Model, tea.Cmd) {
	if len(key) != 1 || key[0] < '1' || int(key[0]-'0') > len(m.options) {
		return m, nil
	}
	picked := m.options[key[0]-'1']

	if m.action == actionLearn {
		m.state = statePlaying
		m.status = ""
		if _, ok := m.cfg.Session.Learn(picked.id); !ok {
			m.status = m.labels.Text("tui.rejected", nil)
		}
		m.refresh()
		return m, nil
	}

	m.target = picked.id
	m.state = stateAmount
	m.textInput.Reset()
	m.textInput.Placeholder = m.labels.Text("tui.amount", map[string]any{"currency": m.labels.Currency().Code})
	return m, m.textInput.Focus()
}

// submitAmount runs the pending command. Amounts are typed in the
// display currency and converted back to the base unit.
func (m *model) submitAmount() {
	m.state = statePlaying
	m.textInput.Blur()

	v, err := decimal.NewFromString(strings.TrimSpace(m.textInput.Value()))
	if err != nil || !v.IsPositive() {
		m.status = m.labels.Text("tui.invalidAmount", nil)
		return
	}
	amt, _ := v.Div(decimal.NewFromFloat(m.labels.Currency().Rate)).Float64()

	sess := m.cfg.Session
	var ok bool
	switch m.action {
	case actionBuy:
		_, ok = sess.Buy(m.target, amt)
	case actionRepay:
		_, ok = sess.Repay(m.target, amt)
	case actionBorrow:
		_, ok = sess.Borrow(m.target, amt)
	}
	m.status = ""
	if !ok {
		m.status = m.labels.Text("tui.rejected", nil)
	}
}

func (m *model) cycleCurrency() {
	curs := m.cfg.Session.Engine().Catalog().Currencies
	next := curs[0]
	for i, c := range curs {
		if c.Code == m.labels.Currency().Code {
			next = curs[(i+1)%len(curs)]
		}
	}
	m.relabel(m.labels.Lang(), next)
}

func (m *model) cycleLanguage() {
	langs := m.cfg.Session.Engine().Catalog().Languages
	next := langs[0].Code
	for i, l := range langs {
		if l.Code == m.labels.Lang() {
			next = langs[(i+1)%len(langs)].Code
		}
	}
	m.relabel(next, m.labels.Currency())
}

func (m *model) relabel(lang string, cur models.Currency) {
	labels, err := i18n.NewLabeler(m.cfg.Translator, lang, m.cfg.Formatter, cur)
	if err != nil {
		m.cfg.Logger.Error("switch display", log.FieldError, err)
		return
	}
	m.labels = labels
	m.cfg.Session.SetLabeler(labels)
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderLog(m.cfg.Session.State()))
	m.viewport.GotoTop()
}

func (m model) View() string {
	state := m.cfg.Session.State()

	title := titleStyle.Render(m.labels.Text("app.title", nil))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(state),
	)

	var bottom string
	switch m.state {
	case stateChoosing:
		lines := []string{m.status}
		for i, o := range m.options {
			lines = append(lines, fmt.Sprintf("  %d) %s", i+1, o.label))
		}
		bottom = strings.Join(lines, "\n")
	case stateAmount:
		bottom = m.textInput.View()
	default:
		bottom = gameStyle.Render(m.status)
	}

	help := helpStyle.Render(m.labels.Text("help.keys", nil))
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, title, mainView, "\n"+bottom, "\n"+help) + "\n"
}

func (m model) renderState(s models.GameState) string {
	l := m.labels
	months := s.CurrentMonth()
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s\n", l.Text("app.netWorth", nil), l.Money(s.NetWorth))
	fmt.Fprintf(&b, "%s: %s\n", l.Text("app.cash", nil), l.Money(s.Cash))
	fmt.Fprintf(&b, "%s: %s\n", l.Text("app.debt", nil), l.Money(s.TotalDebt()))
	fmt.Fprintf(&b, "%s: %d XP\n", l.Text("app.iq", nil), s.FinancialIQ)
	fmt.Fprintf(&b, "%s: %d%%\n", l.Text("app.happiness", nil), s.Happiness)
	fmt.Fprintf(&b, "%s\n", l.Text("dashboard.age", map[string]any{"years": s.Age / 12, "months": s.Age % 12}))
	fmt.Fprintf(&b, "%s\n", l.Text("tui.job", map[string]any{"job": l.Name("jobs", s.Income.Job.ID, "title", s.Income.Job.Title)}))
	fmt.Fprintf(&b, "%s\n\n", helpStyle.Render(l.Text("tui.settings", map[string]any{"language": l.Lang(), "currency": l.Currency().Code})))

	cf := m.cfg.Session.Engine().Project(s)
	b.WriteString(titleStyle.Render(l.Text("dashboard.monthlyCashflow", nil)) + "\n")
	fmt.Fprintf(&b, "%s: %s\n", l.Text("dashboard.income", nil), l.Money(cf.Income))
	fmt.Fprintf(&b, "%s: %s\n", l.Text("dashboard.expenses", nil), l.Money(-cf.Living))
	fmt.Fprintf(&b, "%s: %s\n", l.Text("dashboard.debtPayments", nil), l.Money(-cf.DebtPayments))
	fmt.Fprintf(&b, "%s: %s\n\n", l.Text("dashboard.net", nil), l.Money(cf.Net))

	b.WriteString(titleStyle.Render(l.Text("tui.portfolio", nil)) + "\n")
	held := 0
	for _, a := range s.Assets {
		if a.Quantity > 0 {
			fmt.Fprintf(&b, "- %s: %s\n", l.Name("assets", a.ID, "", a.Name), l.Money(a.Value*a.Quantity))
			held++
		}
	}
	if held == 0 {
		b.WriteString(l.Text("tui.empty", nil) + "\n")
	}
	b.WriteString("\n" + titleStyle.Render(l.Text("tui.debts", nil)) + "\n")
	active := models.ActiveDebts(s.Debts)
	for _, d := range active {
		fmt.Fprintf(&b, "- %s: %s\n", l.Name("loans", d.ID, "", d.Name), l.Money(d.Principal))
	}
	if len(active) == 0 {
		b.WriteString(l.Text("tui.empty", nil) + "\n")
	}

	b.WriteString("\n" + titleStyle.Render(l.Text("dashboard.history", nil)) + "\n")
	stateWidth := int(float64(m.width) * 0.35)
	chartWidth := max(stateWidth-4, 8)
	b.WriteString(sparkline(s.History.NetWorth, chartWidth) + "\n")
	if lo, hi, ok := valueRange(window(s.History.NetWorth, chartWidth)); ok {
		fmt.Fprintf(&b, "%s … %s (M%d)\n", l.Compact(lo), l.Compact(hi), months)
	}

	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func (m model) renderLog(s models.GameState) string {
	logWidth := m.viewport.Width
	var b strings.Builder
	for _, e := range s.History.Logs {
		line := fmt.Sprintf("M%-3d %s", e.Month, e.Message)
		if e.Amount != nil {
			line += " " + m.labels.Money(*e.Amount)
		}
		style := gameStyle
		switch e.Type {
		case models.LogEarning:
			style = earningStyle
		case models.LogExpense:
			style = expenseStyle
		case models.LogEvent:
			style = eventStyle
		}
		b.WriteString(style.Width(logWidth).Render(line) + "\n")
	}
	return b.String()
}

// Run starts the TUI and blocks until the player quits.
func Run(cfg Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	if s := cfg.Scheduler; s != nil {
		s.OnTick = func(t scheduler.Tick) { p.Send(tickMsg(t)) }
		s.Start()
		defer func() { <-s.Stop().Done() }()
	}
	_, err := p.Run()
	return err
}
