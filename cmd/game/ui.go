package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mrazzaque/mystic-manor/internal/config"
	"github.com/mrazzaque/mystic-manor/internal/storage"
	"github.com/mrazzaque/mystic-manor/pkg/game"
	"github.com/mrazzaque/mystic-manor/pkg/textutil"
	"github.com/mrazzaque/mystic-manor/pkg/worldspec"
)

const PlaceHolderText = "Type a command here..."

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narrationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	mapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

// pacedBatch is narration delivered one line at a time.
type pacedBatch struct {
	lines []string
	delay time.Duration
}

// transcript implements game.Display by collecting styled lines. The
// engine runs synchronously inside Update, so no locking is needed.
type transcript struct {
	entries []string
	pending []pacedBatch
}

func (t *transcript) add(s string) {
	t.entries = append(t.entries, s)
}

func (t *transcript) Message(text string) {
	t.add(narrationStyle.Render(text))
}

func (t *transcript) Room(v game.RoomView) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Name) + "\n")
	b.WriteString(narrationStyle.Render("You are "+v.Description+".") + "\n")
	if len(v.Directions) > 0 {
		b.WriteString(narrationStyle.Render("Exits: "+strings.Join(v.Directions, " ")) + "\n")
	}
	if len(v.Items) > 0 {
		b.WriteString(narrationStyle.Render("Items here:") + "\n")
		for _, s := range v.Items {
			b.WriteString(narrationStyle.Render(fmt.Sprintf("  %dx %s (%d lbs)", s.Quantity, s.Name, s.Weight)) + "\n")
		}
	}
	if len(v.NPCs) > 0 {
		b.WriteString(narrationStyle.Render("Characters: "+strings.Join(v.NPCs, ", ")) + "\n")
	}
	t.add(strings.TrimRight(b.String(), "\n"))
}

func (t *transcript) Inventory(v game.InventoryView) {
	var b strings.Builder
	b.WriteString(narrationStyle.Render("You are carrying:") + "\n")
	if len(v.Stacks) == 0 {
		b.WriteString(narrationStyle.Render("  nothing") + "\n")
	}
	for _, s := range v.Stacks {
		b.WriteString(narrationStyle.Render(fmt.Sprintf("  %dx %s (%d lbs)", s.Quantity, s.Name, s.Weight)) + "\n")
	}
	b.WriteString(narrationStyle.Render(fmt.Sprintf("Total weight: %d/%d lbs", v.Weight, v.Cap)))
	t.add(b.String())
}

func (t *transcript) Paced(lines []string, delay time.Duration) {
	if delay <= 0 {
		for _, l := range lines {
			t.Message(l)
		}
		return
	}
	t.pending = append(t.pending, pacedBatch{lines: lines, delay: delay})
}

func (t *transcript) Selection(label string, options []string) {
	if len(options) == 0 {
		t.add(promptStyle.Render(label + ": none"))
		return
	}
	t.add(promptStyle.Render(label + ": " + strings.Join(options, ", ")))
}

func (t *transcript) Map(lines []string) {
	t.add(mapStyle.Render(strings.Join(lines, "\n")))
}

// session ties one running game to its transcript. The engine holds the
// Display and exit callback as closures over this struct, so it must
// outlive model copies.
type session struct {
	game       *game.Game
	spec       *worldspec.Spec
	transcript *transcript
	gameOver   bool
}

// Settings modal stages.
const (
	stageMap = iota
	stageMovement
	stageDifficulty
)

// GameUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	cfg    *config.Config
	store  *storage.WorldStore
	logger *slog.Logger

	sess        *session
	logViewport viewport.Model
	metaViewport viewport.Model
	textarea    textarea.Model
	ready       bool
	width       int
	height      int
	err         error
	pacing      bool

	// World selection state
	showWorldModal bool
	worlds         []string
	worldMap       map[string]string
	selectedWorld  int
	loadingWorlds  bool

	// Settings modal state
	showSettingsModal bool
	settingsStage     int
	settingsSelection int
	pendingSettings   game.Settings

	// Quit confirmation state
	showQuitModal bool
}

type worldsLoadedMsg struct {
	worlds   []string
	worldMap map[string]string
	err      error
}

type gameReadyMsg struct {
	sess *session
	err  error
}

type pacedLineMsg struct{}

func NewGameUI(cfg *config.Config, store *storage.WorldStore, logger *slog.Logger) GameUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return GameUI{
		cfg:            cfg,
		store:          store,
		logger:         logger,
		textarea:       ta,
		logViewport:    logVp,
		metaViewport:   metaVp,
		showWorldModal: true,
		loadingWorlds:  true,
	}
}

func (m GameUI) Init() tea.Cmd {
	// WORLD_FILE skips the selection modal entirely.
	if m.cfg.WorldFile != "" {
		return m.createGame(m.cfg.WorldFile)
	}
	return m.loadWorlds()
}

func (m GameUI) loadWorlds() tea.Cmd {
	return func() tea.Msg {
		worlds, err := m.store.ListWorlds(context.Background())
		if err != nil {
			return worldsLoadedMsg{err: err}
		}
		names := make([]string, 0, len(worlds))
		for name := range worlds {
			names = append(names, name)
		}
		sort.Strings(names)
		return worldsLoadedMsg{worlds: names, worldMap: worlds}
	}
}

func (m GameUI) createGame(filename string) tea.Cmd {
	return func() tea.Msg {
		spec, err := m.store.GetWorld(context.Background(), filename)
		if err != nil {
			return gameReadyMsg{err: err}
		}

		params, err := spec.Build()
		if err != nil {
			return gameReadyMsg{err: err}
		}

		sess := &session{spec: spec, transcript: &transcript{}}
		params.Logger = m.logger
		params.Display = sess.transcript
		params.Exit = func(int) { sess.gameOver = true }

		g, err := game.New(params)
		if err != nil {
			return gameReadyMsg{err: err}
		}
		sess.game = g
		return gameReadyMsg{sess: sess}
	}
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showWorldModal {
		return m.updateWorldModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.showSettingsModal {
		return m.updateSettingsModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeLogContent()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.pacing {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m.runCommand(input)
		}

	case pacedLineMsg:
		return m.advancePacing()
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *GameUI) resize() {
	logWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(logWidth - 4)
}

// runCommand echoes the input, hands it to the engine, then starts
// draining any paced narration the command produced.
func (m GameUI) runCommand(input string) (tea.Model, tea.Cmd) {
	t := m.sess.transcript
	t.add(playerStyle.Render("> " + input))

	cmd := game.Parse(input)
	if cmd.Word() == "configure" {
		m.showSettingsModal = true
		m.settingsStage = stageMap
		m.settingsSelection = 0
		m.pendingSettings = game.Settings{}
		return m, nil
	}

	quit := m.sess.game.Execute(cmd)
	m.writeLogContent()
	m.writeMetadata()

	if len(t.pending) > 0 {
		m.pacing = true
		return m, m.pacedTick()
	}
	if quit || m.sess.gameOver {
		return m, tea.Quit
	}
	return m, nil
}

func (m GameUI) pacedTick() tea.Cmd {
	delay := time.Second
	if len(m.sess.transcript.pending) > 0 {
		delay = m.sess.transcript.pending[0].delay
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return pacedLineMsg{}
	})
}

// advancePacing reveals the next queued narration line. Input stays
// blocked until the queue drains.
func (m GameUI) advancePacing() (tea.Model, tea.Cmd) {
	t := m.sess.transcript
	if len(t.pending) == 0 {
		m.pacing = false
		if m.sess.gameOver {
			return m, tea.Quit
		}
		return m, textarea.Blink
	}

	batch := &t.pending[0]
	t.add(narrationStyle.Render(batch.lines[0]))
	batch.lines = batch.lines[1:]
	if len(batch.lines) == 0 {
		t.pending = t.pending[1:]
	}
	m.writeLogContent()

	if len(t.pending) == 0 {
		m.pacing = false
		if m.sess.gameOver {
			return m, tea.Quit
		}
		return m, textarea.Blink
	}
	return m, m.pacedTick()
}

func (m *GameUI) writeLogContent() {
	if m.sess == nil {
		return
	}
	logWidth := m.logViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(m.sess.spec.Name)) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(logWidth-6, 1))) + "\n\n")

	for _, entry := range m.sess.transcript.entries {
		content.WriteString(wordwrap.String(entry, logWidth) + "\n\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m *GameUI) writeMetadata() {
	if m.sess == nil {
		return
	}
	g := m.sess.game

	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(g.ID().String()[:8] + "...\n\n")

	content.WriteString("World:\n")
	content.WriteString(m.sess.spec.Name + "\n\n")

	room := g.Player().Location()
	if r, err := g.World().Room(room); err == nil {
		room = r.Name()
	}
	content.WriteString("Location:\n")
	content.WriteString(room + "\n\n")

	weight := g.Player().Container().TotalWeight()
	if limit, ok := g.Player().Container().Cap(); ok {
		content.WriteString(fmt.Sprintf("Carrying:\n%d/%d lbs\n\n", weight, limit))
	}

	content.WriteString(fmt.Sprintf("Rooms visited:\n%d of %d\n\n", g.VisitedCount(), len(g.World().Rooms())))

	s := g.Settings()
	content.WriteString("Settings:\n")
	content.WriteString(fmt.Sprintf("• map: %v\n", s.MapEnabled))
	content.WriteString(fmt.Sprintf("• movement: %v\n\n", s.Movement))

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• help: Commands\n")

	m.metaViewport.SetContent(content.String())
}

func (m GameUI) updateWorldModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case worldsLoadedMsg:
		m.loadingWorlds = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.worlds = msg.worlds
			m.worldMap = msg.worldMap
		}

	case gameReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sess = msg.sess
		m.showWorldModal = false

		t := m.sess.transcript
		t.Map(strings.Split(textutil.Box(m.sess.spec.Name), "\n"))
		for _, line := range m.sess.spec.Welcome {
			t.Message(line)
		}
		m.sess.game.ShowRoom()

		// First run always starts at the settings prompts.
		m.showSettingsModal = true
		m.settingsStage = stageMap
		m.settingsSelection = 0
		m.pendingSettings = game.Settings{}

		if m.width > 0 && m.height > 0 {
			m.resize()
			m.ready = true
		}
		m.writeLogContent()
		m.writeMetadata()
		m.textarea.Focus()
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingWorlds || m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selectedWorld > 0 {
				m.selectedWorld--
			}
		case tea.KeyDown:
			if m.selectedWorld < len(m.worlds)-1 {
				m.selectedWorld++
			}
		case tea.KeyEnter:
			if len(m.worlds) > 0 {
				name := m.worlds[m.selectedWorld]
				return m, m.createGame(m.worldMap[name])
			}
		}
	}

	return m, nil
}

// settingsOptions returns the choices for the current stage.
func (m GameUI) settingsOptions() []string {
	if m.settingsStage == stageDifficulty {
		return game.DifficultyNames()
	}
	return []string{"yes", "no"}
}

func (m GameUI) updateSettingsModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.ready {
			m.resize()
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.settingsSelection > 0 {
				m.settingsSelection--
			}
		case tea.KeyDown:
			if m.settingsSelection < len(m.settingsOptions())-1 {
				m.settingsSelection++
			}
		case tea.KeyEnter:
			return m.applySettingsStage()
		}
	}

	return m, nil
}

func (m GameUI) applySettingsStage() (tea.Model, tea.Cmd) {
	choice := m.settingsOptions()[m.settingsSelection]

	switch m.settingsStage {
	case stageMap:
		m.pendingSettings.MapEnabled = choice == "yes"
		m.settingsStage = stageMovement
		m.settingsSelection = 0
		return m, nil
	case stageMovement:
		if choice == "yes" {
			m.pendingSettings.Movement = true
			m.settingsStage = stageDifficulty
			m.settingsSelection = 0
			return m, nil
		}
	case stageDifficulty:
		chance, ok := game.DifficultyChance(choice)
		if !ok {
			chance = 100
		}
		m.pendingSettings.MovementChance = chance
	}

	if err := m.sess.game.ApplySettings(m.pendingSettings); err != nil {
		m.sess.transcript.Message(err.Error())
	} else {
		m.sess.transcript.Message("Game settings saved.")
	}
	m.showSettingsModal = false
	m.writeLogContent()
	m.writeMetadata()
	m.textarea.Focus()
	return m, textarea.Blink
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.showWorldModal && !m.showSettingsModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m GameUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to abandon your escape?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) renderWorldModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingWorlds:
		content.WriteString(modalTitleStyle.Render("Loading Worlds..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	default:
		content.WriteString(modalTitleStyle.Render("Select a World"))
		content.WriteString("\n\n")
		for i, w := range m.worlds {
			if i == m.selectedWorld {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", w)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", w)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) renderSettingsModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	questions := map[int]string{
		stageMap:        game.MapQuestion,
		stageMovement:   game.MovementQuestion,
		stageDifficulty: game.DifficultyQuestion,
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Game Settings"))
	content.WriteString("\n\n")
	content.WriteString(questions[m.settingsStage])
	content.WriteString("\n\n")

	for i, opt := range m.settingsOptions() {
		if i == m.settingsSelection {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", opt)))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", opt)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select"))

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) View() string {
	if m.showWorldModal {
		return m.renderWorldModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showSettingsModal {
		return m.renderSettingsModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
