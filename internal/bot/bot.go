// Package bot turns chat commands into engine evaluations and keeps the
// session's character roster.
package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"DowntimeIncome/internal/engine"
	"DowntimeIncome/internal/model"
	"DowntimeIncome/internal/recorder"
	"DowntimeIncome/internal/summary"
	"DowntimeIncome/internal/table"
	"DowntimeIncome/internal/tracker"
)

// Reloader re-reads the income table from its external source.
type Reloader interface {
	Ingest(ctx context.Context) (*table.Table, error)
}

// ReloadTimeout bounds a /reload request.
var ReloadTimeout = 30 * time.Second

const helpText = `Available commands:
/income name=Ayla level=5 prof=trained band=success days=8 [boon] [check=25 dc=18]
/set <1-7> key=value...   update a roster character
/clear <1-7>              clear a character and every one after it
/roster                   show the roster
/summary                  session summary
/date <text>              set the session date
/scenario <text>          set the scenario name
/table                    show the active income table
/reload                   reload the income table from its source`

// Bot holds one chat session: the roster, the summary header and the
// services commands call into.
type Bot struct {
	Engine   *engine.Engine
	Reloader Reloader // nil when the table is built in
	Recorder recorder.Recorder

	mu     sync.Mutex
	ladder *tracker.Ladder
	header summary.Header
}

// New creates a Bot with an empty roster of tracker.MaxUnits characters.
func New(eng *engine.Engine, reloader Reloader, rec recorder.Recorder) *Bot {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Bot{
		Engine:   eng,
		Reloader: reloader,
		Recorder: rec,
		ladder:   tracker.NewLadder(eng, tracker.MaxUnits),
	}
}

// HandleCommand processes a user command and returns a reply.
func (b *Bot) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	name := strings.ToLower(fields[0])
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at] // "/summary@SomeBot" in group chats
	}
	args := fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(command, fields[0]))

	switch name {
	case "/income":
		return b.income(args)
	case "/set":
		return b.set(args)
	case "/clear":
		return b.clear(args)
	case "/roster":
		return b.roster()
	case "/summary":
		return b.Summary()
	case "/date":
		return b.setHeader(func(h *summary.Header) { h.Date = rest })
	case "/scenario":
		return b.setHeader(func(h *summary.Header) { h.Scenario = rest })
	case "/table":
		return summary.RenderTable(b.Engine.Table(), b.Engine.Variant())
	case "/reload":
		return b.reload()
	default:
		return helpText
	}
}

// Summary renders the header and the resolved roster characters.
func (b *Bot) Summary() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return summary.Build(b.header, b.ladder.Resolved(), b.Engine.Variant())
}

// TableChanged re-evaluates the roster against the newly active table.
func (b *Bot) TableChanged(_ *table.Table) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ladder.Refresh()
}

func (b *Bot) income(args []string) string {
	var in model.EvaluationInput
	if err := ApplyArgs(&in, args); err != nil {
		return "Error: " + err.Error()
	}
	if msg := b.checkDays(in); msg != "" {
		return msg
	}
	res := b.Engine.Evaluate(in)
	b.record(in, res)
	return summary.Describe(res, b.Engine.Variant())
}

func (b *Bot) set(args []string) string {
	if len(args) == 0 {
		return "Usage: /set <1-7> key=value..."
	}
	i, err := unitIndex(args[0])
	if err != nil {
		return "Error: " + err.Error()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u, err := b.ladder.Unit(i)
	if err != nil {
		return "Error: " + err.Error()
	}
	in := u.Input
	if err := ApplyArgs(&in, args[1:]); err != nil {
		return "Error: " + err.Error()
	}
	if msg := b.checkDays(in); msg != "" {
		return msg
	}
	res, err := b.ladder.Set(i, in)
	if err != nil {
		return fmt.Sprintf("Error: character %d is locked; resolve character %d first", i+1, i)
	}
	b.record(in, res)
	return fmt.Sprintf("%d. %s", i+1, summary.Describe(res, b.Engine.Variant()))
}

func (b *Bot) clear(args []string) string {
	if len(args) != 1 {
		return "Usage: /clear <1-7>"
	}
	i, err := unitIndex(args[0])
	if err != nil {
		return "Error: " + err.Error()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ladder.Clear(i); err != nil {
		return "Error: " + err.Error()
	}
	return fmt.Sprintf("Cleared character %d and every character after it.", i+1)
}

func (b *Bot) setHeader(update func(*summary.Header)) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	update(&b.header)
	return "Header: " + summary.HeaderLine(b.header)
}

func (b *Bot) roster() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var lines []string
	for i, u := range b.ladder.Units() {
		if u.State == tracker.StateLocked {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. [%s] %s", i+1, u.State, summary.Describe(u.Result, b.Engine.Variant())))
	}
	return strings.Join(lines, "\n")
}

// reload runs without b.mu held: a successful ingest calls back into
// TableChanged.
func (b *Bot) reload() string {
	if b.Reloader == nil {
		return "The built-in table is active; no external source is configured."
	}
	ctx, cancel := context.WithTimeout(context.Background(), ReloadTimeout)
	defer cancel()
	t, err := b.Reloader.Ingest(ctx)
	if err != nil {
		active := b.Engine.Table()
		return fmt.Sprintf("Table reload failed: %v\nStill using the %s table (%s).", err, active.Provenance(), active.Source())
	}
	return fmt.Sprintf("Loaded %d rows from %s.", t.Len(), t.Source())
}

// checkDays rejects an explicit day count outside the variant's bounds. An
// unset count is left for the engine to report as incomplete.
func (b *Bot) checkDays(in model.EvaluationInput) string {
	if in.Days == 0 {
		return ""
	}
	if err := b.Engine.CheckDays(in.Days); err != nil {
		return "Error: " + err.Error()
	}
	return ""
}

func (b *Bot) record(in model.EvaluationInput, res model.EvaluationResult) {
	if !res.Resolved() {
		return
	}
	if err := b.Recorder.RecordEvaluation(&recorder.EvaluationEvent{
		Variant: b.Engine.Variant().Name,
		Input:   in,
		Result:  res,
	}); err != nil {
		log.Printf("[ERROR] record evaluation: %v", err)
	}
}

func unitIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > tracker.MaxUnits {
		return 0, fmt.Errorf("character number must be 1-%d, got %q", tracker.MaxUnits, s)
	}
	return n - 1, nil
}
