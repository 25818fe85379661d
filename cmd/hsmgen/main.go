// Command hsmgen compiles a PlantUML hierarchical state-machine diagram
// into a self-contained state-machine class in a target language.
//
// Usage:
//
//	hsmgen generate -i INPUT -o OUTPUT [-n NAME] [-l LANGUAGE]
//	hsmgen validate -i INPUT
//	hsmgen simulate  -i INPUT --sim-dir DIR [-n NAME]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dragomit/hsmgen/internal/config"
	"github.com/dragomit/hsmgen/internal/emit"
	"github.com/dragomit/hsmgen/internal/parser"
	"github.com/dragomit/hsmgen/internal/planner"
	"github.com/dragomit/hsmgen/internal/resolver"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hsmgen: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	if len(argv) == 0 {
		printUsage()
		return fmt.Errorf("missing command")
	}

	switch argv[0] {
	case "generate":
		return runGenerate(argv[1:])
	case "validate":
		return runValidate(argv[1:])
	case "simulate":
		return runSimulate(argv[1:])
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", argv[0])
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: hsmgen <generate|validate|simulate> [flags]")
}

// addConfigFlag registers the -c/--config flag shared by every subcommand,
// binding both names to the same destination.
func addConfigFlag(fs *flag.FlagSet) *string {
	var path string
	fs.StringVar(&path, "c", "", "path to config file")
	fs.StringVar(&path, "config", "", "path to config file (same as -c)")
	return &path
}

// loadConfigAndLogger loads hsmgen.toml (per configPath's search order) and
// builds the slog text handler every subcommand logs through.
func loadConfigAndLogger(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return cfg, logger, nil
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	input := fs.String("i", "", "input .puml file")
	output := fs.String("o", "", "output file")
	name := fs.String("n", "", "machine name (default: <CamelCased file stem>Machine)")
	language := fs.String("l", "", "target language: cpp, rust, python (default: config's generate.language)")
	configPath := addConfigFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *output == "" {
		return fmt.Errorf("generate requires -i and -o")
	}

	cfg, logger, err := loadConfigAndLogger(*configPath)
	if err != nil {
		return err
	}

	r, err := loadAndResolve(*input)
	if err != nil {
		return err
	}
	p := planner.Plan(r)

	machineName := *name
	if machineName == "" {
		machineName = defaultMachineName(*input)
	}

	language2 := *language
	if language2 == "" {
		language2 = cfg.Generate.Language
	}

	code, _, err := emit.Render(r, p, language2, emit.Options{
		MachineName:   machineName,
		NamespaceBase: cfg.Generate.NamespaceBase,
		TypePrefix:    cfg.Generate.TypePrefix,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(*output, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	logger.Info("generated state machine", "input", *input, "output", *output, "language", language2, "machine", machineName)
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	input := fs.String("i", "", "input .puml file")
	configPath := addConfigFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("validate requires -i")
	}

	if _, _, err := loadConfigAndLogger(*configPath); err != nil {
		return err
	}

	if _, err := loadAndResolve(*input); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}

// simAssets is the JSON shape written to --sim-dir: the rendered
// language-neutral context plus the machine name, for an external (unbuilt)
// simulator UI to consume. No UI code lives in this repo.
type simAssets struct {
	MachineName string       `json:"machine_name"`
	Context     *emit.Context `json:"context"`
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	input := fs.String("i", "", "input .puml file")
	simDir := fs.String("sim-dir", "", "output directory for simulator assets")
	name := fs.String("n", "", "machine name (default: <CamelCased file stem>Machine)")
	configPath := addConfigFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *simDir == "" {
		return fmt.Errorf("simulate requires -i and --sim-dir")
	}

	cfg, logger, err := loadConfigAndLogger(*configPath)
	if err != nil {
		return err
	}

	r, err := loadAndResolve(*input)
	if err != nil {
		return err
	}
	p := planner.Plan(r)

	machineName := *name
	if machineName == "" {
		machineName = defaultMachineName(*input)
	}

	ctx := emit.BuildContext(r, p, emit.Python{}, emit.Options{
		MachineName:   machineName,
		NamespaceBase: cfg.Generate.NamespaceBase,
		TypePrefix:    cfg.Generate.TypePrefix,
	})

	if err := os.MkdirAll(*simDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", *simDir, err)
	}
	assetPath := filepath.Join(*simDir, "machine.json")
	buf, err := json.MarshalIndent(simAssets{MachineName: machineName, Context: ctx}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling simulator assets: %w", err)
	}
	if err := os.WriteFile(assetPath, buf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", assetPath, err)
	}
	logger.Info("wrote simulator assets", "input", *input, "dir", *simDir, "machine", machineName)
	return nil
}

func loadAndResolve(inputPath string) (*resolver.Resolved, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer f.Close()

	m, err := parser.Parse(f)
	if err != nil {
		return nil, err
	}
	m.Freeze()
	return resolver.Resolve(m), nil
}

// defaultMachineName implements spec.md §6's "<CamelCased file stem>Machine"
// rule. If the stem yields no CamelCase characters at all, it falls back to
// the original generator's own default constant.
func defaultMachineName(inputPath string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	camel := camelCase(stem)
	if camel == "" {
		return "StateSurfMachine"
	}
	return camel + "Machine"
}

func camelCase(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			upperNext = true
		case upperNext:
			b.WriteRune(toUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
