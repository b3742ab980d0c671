// Command earnincome resolves downtime income for one character and prints
// the result line and session summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"DowntimeIncome/internal/config"
	"DowntimeIncome/internal/engine"
	"DowntimeIncome/internal/ingest"
	"DowntimeIncome/internal/model"
	"DowntimeIncome/internal/recorder"
	"DowntimeIncome/internal/summary"
	"DowntimeIncome/internal/table"
)

// cliConfig holds the command-line options of one run.
type cliConfig struct {
	ConfigPath string
	Variant    string
	Table      string
	ShowTable  bool

	Name     string
	Level    int
	Prof     string
	Boon     bool
	Band     string
	Check    *int
	DC       *int
	Days     int
	Date     string
	Scenario string
}

// parseConfig parses flags into a cliConfig.
func parseConfig(fs *flag.FlagSet, args []string) (cliConfig, error) {
	var cfg cliConfig
	var check, dc int

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	fs.StringVar(&cfg.ConfigPath, "config", defaultPath, "YAML config file")
	fs.StringVar(&cfg.Variant, "variant", "", "rule variant (default from config: pathfinder)")
	fs.StringVar(&cfg.Table, "table", "", "income table: builtin, a CSV path or an http(s) URL (default from config)")
	fs.BoolVar(&cfg.ShowTable, "show-table", false, "print the active income table")
	fs.StringVar(&cfg.Name, "name", "", "character name")
	fs.IntVar(&cfg.Level, "level", 0, "character level")
	fs.StringVar(&cfg.Prof, "prof", "", "proficiency: trained, expert, master, legendary")
	fs.BoolVar(&cfg.Boon, "boon", false, "boon is active")
	fs.StringVar(&cfg.Band, "band", "", "result: crit-success, success, fail, crit-fail")
	fs.IntVar(&check, "check", 0, "check total, used when -band is not given")
	fs.IntVar(&dc, "dc", 0, "difficulty for -check (default: the table's)")
	fs.IntVar(&cfg.Days, "days", 1, "downtime days")
	fs.StringVar(&cfg.Date, "date", "", "session date for the summary header")
	fs.StringVar(&cfg.Scenario, "scenario", "", "scenario name for the summary header")
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "check":
			cfg.Check = &check
		case "dc":
			cfg.DC = &dc
		}
	})
	return cfg, nil
}

// input converts the character flags into an engine input.
func (c cliConfig) input() (model.EvaluationInput, error) {
	in := model.EvaluationInput{
		Name:           c.Name,
		CharacterLevel: c.Level,
		Boon:           c.Boon,
		CheckTotal:     c.Check,
		Difficulty:     c.DC,
		Days:           c.Days,
	}
	var err error
	if c.Prof != "" {
		if in.Proficiency, err = model.ParseProficiency(c.Prof); err != nil {
			return in, fmt.Errorf("-prof: %w", err)
		}
	}
	if in.Band, err = model.ParseBand(c.Band); err != nil {
		return in, fmt.Errorf("-band: %w", err)
	}
	return in, nil
}

func run(ctx context.Context, cfg cliConfig, out io.Writer) error {
	appCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if cfg.Variant != "" {
		appCfg.Rules.Variant = cfg.Variant
	}
	if cfg.Table != "" {
		appCfg.Table.Source = cfg.Table
	}
	variant, err := appCfg.Variant()
	if err != nil {
		return err
	}

	in, err := cfg.input()
	if err != nil {
		return err
	}

	holder := table.NewHolder(nil)
	eng, err := engine.New(holder, variant)
	if err != nil {
		return err
	}
	if err := eng.CheckDays(in.Days); err != nil {
		return fmt.Errorf("-days: %w", err)
	}

	rec := recorder.Recorder(recorder.NewNoopRecorder())
	if appCfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(appCfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			rec = sr
			defer sr.Close()
		}
	}

	if src := ingest.NewSource(appCfg.Table.Source, appCfg.Proxy); src != nil {
		if _, err := ingest.NewIngestor(src, holder, rec).Ingest(ctx); err != nil {
			fmt.Fprintf(out, "Warning: %v; using the built-in table.\n\n", err)
		}
	}

	res := eng.Evaluate(in)
	if res.Resolved() {
		if err := rec.RecordEvaluation(&recorder.EvaluationEvent{Variant: variant.Name, Input: in, Result: res}); err != nil {
			log.Printf("[ERROR] record evaluation: %v", err)
		}
	}

	fmt.Fprintln(out, summary.Describe(res, variant))
	fmt.Fprintln(out)
	fmt.Fprintln(out, summary.Build(summary.Header{Date: cfg.Date, Scenario: cfg.Scenario}, []model.EvaluationResult{res}, variant))
	if cfg.ShowTable {
		fmt.Fprintln(out)
		fmt.Fprint(out, summary.RenderTable(eng.Table(), variant))
	}
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("[FATAL] parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}
