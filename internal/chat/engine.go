package chat

import (
	"fmt"
	"time"

	"elmora/internal/record"
	"elmora/internal/timefmt"
)

// Scheduler queues a notification for a future time. Calls are
// fire-and-forget: the engine never learns whether delivery happened.
type Scheduler interface {
	Schedule(title, body string, at time.Time)
}

// Dialer places a phone call. The engine swallows its error.
type Dialer interface {
	Call(number string) error
}

// DurationFormatter renders a minute count as spoken text.
type DurationFormatter interface {
	Format(minutes int) string
}

// Engine is the turn-based dialogue manager. It owns the append-only
// transcript, the single live pending action, and at most one selected store
// reference. It performs no locking: callers invoke it from one goroutine at
// a time.
type Engine struct {
	messages      []Message
	pending       PendingAction
	selectedStore *record.Store

	scheduler Scheduler
	dialer    Dialer
	durations DurationFormatter
	now       func() time.Time

	wakeHour   int
	wakeMinute int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithUsualWakeTime sets the alarm time used when the user asks for their
// usual wake-up. Defaults to 7:00.
func WithUsualWakeTime(hour, minute int) Option {
	return func(e *Engine) {
		e.wakeHour = hour
		e.wakeMinute = minute
	}
}

// NewEngine creates an engine with its collaborators injected. Any
// collaborator may be nil; the engine then skips the corresponding side
// effect and the conversation continues unaffected.
func NewEngine(scheduler Scheduler, dialer Dialer, durations DurationFormatter, opts ...Option) *Engine {
	e := &Engine{
		scheduler:  scheduler,
		dialer:     dialer,
		durations:  durations,
		now:        time.Now,
		wakeHour:   7,
		wakeMinute: 0,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Messages returns the full transcript.
func (e *Engine) Messages() []Message { return e.messages }

// Pending returns the live pending action.
func (e *Engine) Pending() PendingAction { return e.pending }

// SelectedStore returns the store chosen in an active shopping flow, if any.
func (e *Engine) SelectedStore() *record.Store { return e.selectedStore }

// MarkCompleted flips the Completed flag on a transcript message. Called by
// the presentation layer once the message is fully revealed; it has no effect
// on dispatch.
func (e *Engine) MarkCompleted(id string) {
	for i := range e.messages {
		if e.messages[i].ID == id {
			e.messages[i].Completed = true
			return
		}
	}
}

// Advance processes one user utterance: appends the user message, classifies
// it, and appends the assistant's response. It returns every newly appended
// message, user message first.
func (e *Engine) Advance(raw string) []Message {
	start := len(e.messages)
	e.append(newMessage(raw, RoleUser, PendingNone))

	switch Classify(raw) {
	case IntentConfirmation:
		e.resolveConfirmation()
	case IntentCloseFlow:
		e.closeFlow()
	case IntentMedicine:
		e.appendAssistant("Here are your today's medication list:", AwaitingMedicineAck)
		// Courtesy follow-up; carries no tag of its own.
		e.append(newMessage("Don't worry, I'll remind you to take them.", RoleAssistant, PendingNone))
	case IntentPantryCheck:
		e.appendAssistant("Do you already have it at home?", AwaitingHomeCheck)
	case IntentShopping:
		e.appendAssistant("Sure, which store do you want to go?", AwaitingShopChoice)
	case IntentOuting:
		e.appendAssistant("Do you want me to check your calendar and suggest plans?", AwaitingOutingChoice)
	case IntentSleep:
		e.appendAssistant("Of course! Would you like me to set an alarm for a full 7 hours of sleep?", AwaitingBedtimeChoice)
	case IntentDial:
		e.appendAssistant("Would you like me to call your favorite contact?", AwaitingDialChoice)
	case IntentGreeting:
		e.appendAssistant("Hey there! How can I assist you today?", PendingNone)
	default:
		e.appendAssistant("Sorry, currently I can't assist you with that.", AwaitingInstructions)
	}

	return e.messages[start:]
}

// resolveConfirmation handles a bare "yes"/"sure". Only the shop-choice,
// reminder-choice, and outing-choice states have a follow-up; every other
// live state clears silently. The pending action always ends up cleared,
// even when the outing branch set a new tag inside the switch.
func (e *Engine) resolveConfirmation() {
	switch e.pending {
	case AwaitingShopChoice:
		e.appendAssistant("Please select your preferred store.", PendingNone)
	case AwaitingReminderChoice:
		e.appendAssistant("Great! I will remind you.", PendingNone)
	case AwaitingOutingChoice:
		e.suggestPlans()
	}
	e.pending = PendingNone
}

// closeFlow ends the exchange on thanks or a plain "no".
func (e *Engine) closeFlow() {
	e.appendAssistant("No problem!, I'm here to help.", PendingNone)
}

// suggestPlans offers outing suggestions and waits for the user to pick one.
func (e *Engine) suggestPlans() {
	e.appendAssistant("Great your calendar is clear for the day... Here are some suggestions:", AwaitingOutingConfirmation)
}

// ResolveShopSelection records the chosen store and offers a reach-home
// reminder. Valid only while a shop choice is awaited.
func (e *Engine) ResolveShopSelection(store record.Store) []Message {
	if e.pending != AwaitingShopChoice {
		return nil
	}
	start := len(e.messages)
	e.selectedStore = &store
	e.appendAssistant(
		fmt.Sprintf("Sure, it will take %s, do you want me to remind you once it's done?", e.formatMinutes(store.EstimatedTime)),
		AwaitingReminderChoice,
	)
	return e.messages[start:]
}

// ResolvePantryCheck handles the "do you have it at home?" answer. Found ends
// the flow; not found re-enters the shopping flow.
func (e *Engine) ResolvePantryCheck(found bool) []Message {
	if e.pending != AwaitingHomeCheck {
		return nil
	}
	start := len(e.messages)
	if found {
		e.appendAssistant("That's great!, let me know if I could help in something else", PendingNone)
	} else {
		e.appendAssistant("Oh no issues, you can checkout from any of the stores below.", AwaitingShopChoice)
	}
	return e.messages[start:]
}

// ResolveOutingWanted handles the calendar-check answer.
func (e *Engine) ResolveOutingWanted(wanted bool) []Message {
	if e.pending != AwaitingOutingChoice {
		return nil
	}
	start := len(e.messages)
	if wanted {
		e.suggestPlans()
	} else {
		e.appendAssistant("Sure thing! Let me know if I could help in something else", PendingNone)
	}
	return e.messages[start:]
}

// ResolveSleep handles the bedtime alarm choice. All three branches are
// terminal: the pending action clears whichever way the user answers.
func (e *Engine) ResolveSleep(alarmOn, usualTime bool) []Message {
	if e.pending != AwaitingBedtimeChoice {
		return nil
	}
	start := len(e.messages)
	switch {
	case alarmOn && !usualTime:
		at := e.now().Add(7 * time.Hour)
		e.appendAssistant(fmt.Sprintf("Sure, will set the alarm for %s. Good night!", timefmt.Clock(at)), PendingNone)
		e.schedule("Good Morning!", "Wakey Wakey it's time to wake up!", at)
	case alarmOn && usualTime:
		at := timefmt.NextOccurrence(e.now(), e.wakeHour, e.wakeMinute)
		e.appendAssistant("Sure, will set the alarm for your usual time. Good night!", PendingNone)
		e.schedule("Good Morning!", "Wakey Wakey it's time to wake up!", at)
	default:
		e.appendAssistant("Sure, have a great sleep. Good night!", PendingNone)
	}
	return e.messages[start:]
}

// ResolveReminderChoice handles the reach-home reminder answer. The selected
// store is released either way: declining the reminder must not leave a stale
// reference for a later, unrelated flow.
func (e *Engine) ResolveReminderChoice(remind bool) []Message {
	if e.pending != AwaitingReminderChoice {
		return nil
	}
	start := len(e.messages)
	if remind {
		e.appendAssistant("Great! I will remind for you.", PendingNone)
		if e.selectedStore != nil {
			at := e.now().Add(time.Duration(e.selectedStore.EstimatedTime) * time.Minute)
			e.schedule("Hey there!", "Did you reach home safely?", at)
		}
	} else {
		e.appendAssistant("Sure! No problem.", PendingNone)
	}
	e.selectedStore = nil
	return e.messages[start:]
}

// ResolveDialSelection places the call through the telephony collaborator.
// The transcript is deliberately untouched: the call sheet is the response.
func (e *Engine) ResolveDialSelection(contact record.Contact) []Message {
	if e.pending != AwaitingDialChoice {
		return nil
	}
	e.pending = PendingNone
	if e.dialer != nil {
		// Dialing is best effort; the conversation carries on either way.
		_ = e.dialer.Call(contact.Number)
	}
	return nil
}

func (e *Engine) append(m Message) {
	e.messages = append(e.messages, m)
}

// appendAssistant adds an assistant message and makes its tag the live
// pending action. Every assistant turn overwrites the previous tag.
func (e *Engine) appendAssistant(content string, pending PendingAction) {
	e.append(newMessage(content, RoleAssistant, pending))
	e.pending = pending
}

func (e *Engine) schedule(title, body string, at time.Time) {
	if e.scheduler != nil {
		e.scheduler.Schedule(title, body, at)
	}
}

func (e *Engine) formatMinutes(minutes int) string {
	if e.durations != nil {
		return e.durations.Format(minutes)
	}
	return timefmt.FormatMinutes(minutes)
}
