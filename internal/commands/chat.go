package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"elmora/internal/chat"
	"elmora/internal/config"
	"elmora/internal/record"
	"elmora/internal/tui"
	"elmora/internal/ui"
)

// replOption is one numbered choice in the line-mode chat.
type replOption struct {
	label  string
	detail string
	apply  func() []chat.Message
}

// RunChat is the entry point for `elmora chat`. On a terminal it opens the
// TUI; otherwise (or with --once or a message argument) it works line by line.
func RunChat(args []string, once bool) {
	cfg, err := config.LoadConfig()
	if err != nil {
		ui.ShowError("Failed to load config", err)
		os.Exit(1)
	}

	records := openRecords(cfg)
	scheduler := openScheduler(cfg)
	engine := newEngine(cfg, scheduler, localDialer())

	if len(args) > 0 {
		printReplies(engine.Advance(strings.Join(args, " ")))
		if !once {
			runREPL(engine, records)
		}
		return
	}

	if once {
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			ui.ShowError("nothing to say", nil)
			os.Exit(1)
		}
		printReplies(engine.Advance(line))
		return
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := tui.Run(engine, records); err != nil {
			ui.ShowError("chat failed", err)
			os.Exit(1)
		}
		return
	}

	runREPL(engine, records)
}

// runREPL drives the conversation over plain stdin/stdout. Pending choices
// become numbered options; entering a number picks one.
func runREPL(engine *chat.Engine, records *record.Stores) {
	scanner := bufio.NewScanner(os.Stdin)
	options := buildReplOptions(engine, records)
	printReplOptions(options)

	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if line == "/quit" || line == "/exit" {
			return
		}

		var appended []chat.Message
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			appended = options[n-1].apply()
		} else {
			appended = engine.Advance(line)
		}

		printReplies(appended)
		options = buildReplOptions(engine, records)
		printReplOptions(options)
		fmt.Print("> ")
	}
}

// buildReplOptions derives the numbered choices from the pending action.
func buildReplOptions(engine *chat.Engine, records *record.Stores) []replOption {
	var options []replOption

	switch engine.Pending() {
	case chat.AwaitingShopChoice:
		for _, store := range records.Stores.List() {
			store := store
			options = append(options, replOption{
				label:  store.Name,
				detail: store.Distance,
				apply:  func() []chat.Message { return engine.ResolveShopSelection(store) },
			})
		}

	case chat.AwaitingDialChoice:
		for _, contact := range records.Contacts.List() {
			contact := contact
			options = append(options, replOption{
				label:  contact.Name,
				detail: contact.Number,
				apply:  func() []chat.Message { return engine.ResolveDialSelection(contact) },
			})
		}

	case chat.AwaitingHomeCheck:
		options = []replOption{
			{label: "Yes, I have it", apply: func() []chat.Message { return engine.ResolvePantryCheck(true) }},
			{label: "No, I need to buy it", apply: func() []chat.Message { return engine.ResolvePantryCheck(false) }},
		}

	case chat.AwaitingOutingChoice:
		options = []replOption{
			{label: "Yes, check my calendar", apply: func() []chat.Message { return engine.ResolveOutingWanted(true) }},
			{label: "No, maybe later", apply: func() []chat.Message { return engine.ResolveOutingWanted(false) }},
		}

	case chat.AwaitingBedtimeChoice:
		options = []replOption{
			{label: "Yes, 7 hours from now", apply: func() []chat.Message { return engine.ResolveSleep(true, false) }},
			{label: "My usual time", apply: func() []chat.Message { return engine.ResolveSleep(true, true) }},
			{label: "No alarm", apply: func() []chat.Message { return engine.ResolveSleep(false, false) }},
		}

	case chat.AwaitingReminderChoice:
		options = []replOption{
			{label: "Yes, remind me", apply: func() []chat.Message { return engine.ResolveReminderChoice(true) }},
			{label: "No thanks", apply: func() []chat.Message { return engine.ResolveReminderChoice(false) }},
		}

	case chat.AwaitingMedicineAck:
		for _, med := range records.Medicines.List() {
			fmt.Printf("  • %s — %s at %s\n", med.Name, med.Dosage, med.TimeOfDay)
		}

	case chat.AwaitingOutingConfirmation:
		for _, plan := range records.Plans.List() {
			fmt.Printf("  • %s\n", plan.Plan)
		}
	}

	return options
}

// printReplies echoes newly appended assistant messages.
func printReplies(appended []chat.Message) {
	for _, msg := range appended {
		if msg.Role != chat.RoleAssistant {
			continue
		}
		fmt.Printf("elmora: %s\n", msg.Content)
	}
}

func printReplOptions(options []replOption) {
	for i, opt := range options {
		ui.ShowOption(i+1, opt.label, opt.detail)
	}
}
