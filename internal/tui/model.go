// Package tui is the terminal chat surface: a transcript viewport with a
// typing-reveal effect for assistant messages, tappable option rows for
// pending choices, and a prompt with a rotating suggestion placeholder.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"elmora/internal/chat"
	"elmora/internal/record"
)

// revealInterval paces the typing effect, a few characters per tick.
const revealInterval = 30 * time.Millisecond

// option is one choice row shown under the transcript.
type option struct {
	label string
	apply func() []chat.Message
}

// Model is the chat TUI model.
type Model struct {
	engine  *chat.Engine
	records *record.Stores

	vp    viewport.Model
	input textinput.Model
	help  help.Model

	width  int
	height int
	ready  bool

	// typing reveal: assistant messages queue up and are revealed in order
	revealQueue []chat.Message
	revealShown int // runes of revealQueue[0] revealed so far

	options      []option
	optionCursor int

	suggestions []string
	err         string
}

// revealTickMsg advances the typing reveal.
type revealTickMsg struct{}

func revealTick() tea.Cmd {
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{}
	})
}

// NewModel creates the initial chat model.
func NewModel(engine *chat.Engine, records *record.Stores) Model {
	suggestions := chat.LoadSuggestions(chat.SuggestionsPath(records.Dir()))

	input := textinput.New()
	input.Placeholder = "Try: " + chat.Suggestion(suggestions)
	input.Prompt = "> "
	input.Focus()
	input.CharLimit = 280

	return Model{
		engine:      engine,
		records:     records,
		input:       input,
		help:        help.New(),
		suggestions: suggestions,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - chromeHeight(m)
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(m.width-4, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = m.width - 4
			m.vp.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case revealTickMsg:
		return m.advanceReveal()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.input.SetValue("")
			m.err = ""
			return m, nil

		case key.Matches(msg, keys.Prev):
			if len(m.options) > 0 {
				m.optionCursor--
				if m.optionCursor < 0 {
					m.optionCursor = len(m.options) - 1
				}
				return m, nil
			}

		case key.Matches(msg, keys.Next):
			if len(m.options) > 0 {
				m.optionCursor = (m.optionCursor + 1) % len(m.options)
				return m, nil
			}

		case key.Matches(msg, keys.Send):
			// An empty prompt with options live means "pick the highlighted one".
			if m.input.Value() == "" && len(m.options) > 0 && !m.revealing() {
				return m.pickOption()
			}
			if m.input.Value() != "" {
				return m.send()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// revealing reports whether assistant text is still being typed out.
func (m Model) revealing() bool {
	return len(m.revealQueue) > 0
}

// send hands the prompt text to the engine and queues its replies.
func (m Model) send() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.input.SetValue("")
	m.input.Placeholder = "Try: " + chat.Suggestion(m.suggestions)
	m.err = ""

	appended := m.engine.Advance(text)
	return m.queueReplies(appended)
}

// pickOption applies the highlighted choice.
func (m Model) pickOption() (tea.Model, tea.Cmd) {
	opt := m.options[m.optionCursor]
	m.options = nil
	m.optionCursor = 0
	m.err = ""

	appended := opt.apply()
	return m.queueReplies(appended)
}

// queueReplies stages newly appended messages: user messages show at once,
// assistant messages join the reveal queue.
func (m Model) queueReplies(appended []chat.Message) (tea.Model, tea.Cmd) {
	wasRevealing := m.revealing()
	for _, msg := range appended {
		if msg.Role == chat.RoleAssistant {
			m.revealQueue = append(m.revealQueue, msg)
		}
	}
	m.refreshViewport()

	if !m.revealing() {
		m.rebuildOptions()
		return m, nil
	}
	if wasRevealing {
		return m, nil // a tick is already in flight
	}
	return m, revealTick()
}

// advanceReveal types out a few more characters of the current assistant
// message; when a message completes it is marked and the next one starts.
func (m Model) advanceReveal() (tea.Model, tea.Cmd) {
	if !m.revealing() {
		return m, nil
	}

	current := []rune(m.revealQueue[0].Content)
	m.revealShown += 3
	if m.revealShown >= len(current) {
		m.engine.MarkCompleted(m.revealQueue[0].ID)
		m.revealQueue = m.revealQueue[1:]
		m.revealShown = 0
	}
	m.refreshViewport()

	if m.revealing() {
		return m, revealTick()
	}
	m.rebuildOptions()
	return m, nil
}

// rebuildOptions derives the choice rows from the engine's pending action.
func (m *Model) rebuildOptions() {
	m.options = nil
	m.optionCursor = 0

	switch m.engine.Pending() {
	case chat.AwaitingShopChoice:
		for _, store := range m.records.Stores.List() {
			store := store
			m.options = append(m.options, option{
				label: store.Name + " (" + store.Distance + ")",
				apply: func() []chat.Message { return m.engine.ResolveShopSelection(store) },
			})
		}

	case chat.AwaitingDialChoice:
		for _, contact := range m.records.Contacts.List() {
			contact := contact
			m.options = append(m.options, option{
				label: contact.Name + " · " + contact.Number,
				apply: func() []chat.Message { return m.engine.ResolveDialSelection(contact) },
			})
		}

	case chat.AwaitingHomeCheck:
		m.options = []option{
			{label: "Yes, I have it", apply: func() []chat.Message { return m.engine.ResolvePantryCheck(true) }},
			{label: "No, I need to buy it", apply: func() []chat.Message { return m.engine.ResolvePantryCheck(false) }},
		}

	case chat.AwaitingOutingChoice:
		m.options = []option{
			{label: "Yes, check my calendar", apply: func() []chat.Message { return m.engine.ResolveOutingWanted(true) }},
			{label: "No, maybe later", apply: func() []chat.Message { return m.engine.ResolveOutingWanted(false) }},
		}

	case chat.AwaitingBedtimeChoice:
		m.options = []option{
			{label: "Yes, 7 hours from now", apply: func() []chat.Message { return m.engine.ResolveSleep(true, false) }},
			{label: "My usual time", apply: func() []chat.Message { return m.engine.ResolveSleep(true, true) }},
			{label: "No alarm", apply: func() []chat.Message { return m.engine.ResolveSleep(false, false) }},
		}

	case chat.AwaitingReminderChoice:
		m.options = []option{
			{label: "Yes, remind me", apply: func() []chat.Message { return m.engine.ResolveReminderChoice(true) }},
			{label: "No thanks", apply: func() []chat.Message { return m.engine.ResolveReminderChoice(false) }},
		}
	}
}

// Run starts the chat TUI.
func Run(engine *chat.Engine, records *record.Stores) error {
	p := tea.NewProgram(NewModel(engine, records), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
