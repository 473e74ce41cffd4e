package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"elmora/internal/chat"
)

// chromeHeight is the vertical space everything but the viewport needs.
func chromeHeight(m Model) int {
	h := 7 // title, padding, input, help
	if len(m.options) > 0 {
		h += len(m.options) + 1
	}
	if m.err != "" {
		h++
	}
	return h
}

// refreshViewport rebuilds the transcript text, honoring the reveal queue:
// queued assistant messages are hidden, the head one shown partially.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	hidden := make(map[string]bool, len(m.revealQueue))
	for i, msg := range m.revealQueue {
		if i > 0 {
			hidden[msg.ID] = true
		}
	}

	var partialID string
	var partial string
	if len(m.revealQueue) > 0 {
		head := m.revealQueue[0]
		partialID = head.ID
		runes := []rune(head.Content)
		n := m.revealShown
		if n > len(runes) {
			n = len(runes)
		}
		partial = string(runes[:n])
	}

	var b strings.Builder
	for _, msg := range m.engine.Messages() {
		if hidden[msg.ID] {
			continue
		}
		content := msg.Content
		if msg.ID == partialID {
			content = partial
		}
		b.WriteString(m.renderMessage(msg, content))
		b.WriteString("\n")
	}

	// Inline detail lists belong to the last fully revealed assistant turn.
	if !m.revealing() {
		b.WriteString(m.renderInlineList())
	}

	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

// renderMessage draws one chat bubble.
func (m *Model) renderMessage(msg chat.Message, content string) string {
	maxWidth := m.vp.Width * 3 / 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	if msg.Role == chat.RoleUser {
		bubble := userBubbleStyle.MaxWidth(maxWidth).Render(content)
		return lipgloss.NewStyle().Width(m.vp.Width).Align(lipgloss.Right).Render(
			speakerStyle.Render("you") + "\n" + bubble,
		)
	}
	return speakerStyle.Render("elmora") + "\n" + assistantBubbleStyle.MaxWidth(maxWidth).Render(content)
}

// renderInlineList shows medicines or plan suggestions under the transcript
// when the live pending action calls for them.
func (m *Model) renderInlineList() string {
	var b strings.Builder
	switch m.engine.Pending() {
	case chat.AwaitingMedicineAck:
		for _, med := range m.records.Medicines.List() {
			line := med.Name + " — " + med.Dosage + " at " + med.TimeOfDay
			if med.Notes != "" {
				line += " (" + med.Notes + ")"
			}
			b.WriteString(inlineItemStyle.Render("• "+line) + "\n")
		}
	case chat.AwaitingOutingConfirmation:
		for _, plan := range m.records.Plans.List() {
			b.WriteString(inlineItemStyle.Render("• "+plan.Plan) + "\n")
		}
	}
	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Elmora") + "\n\n")
	b.WriteString(m.vp.View() + "\n")

	if len(m.options) > 0 && !m.revealing() {
		b.WriteString(optionHintStyle.Render("pick one, or just type:") + "\n")
		for i, opt := range m.options {
			style := optionStyle
			if i == m.optionCursor {
				style = selectedOptionStyle
			}
			b.WriteString(style.Render(opt.label) + "\n")
		}
	}

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err) + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render(m.help.View(keys)))

	return appStyle.Render(b.String())
}
