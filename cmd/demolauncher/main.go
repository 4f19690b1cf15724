package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"demolauncher/internal/browse"
	"demolauncher/internal/config"
	"demolauncher/internal/launch"
	"demolauncher/internal/trace"
	"demolauncher/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// flags holds command-line overrides; empty values leave the config untouched.
type flags struct {
	config   string
	root     string
	mode     string
	python   string
	notebook string
}

func parseFlags() flags {
	var f flags

	flag.StringVar(&f.config, "config", "", "config file (default $"+config.ConfigEnv+" or ~/.config/demolauncher/config.yaml)")
	flag.StringVar(&f.root, "root", "", "demos folder to browse (default ./demos, else demos next to the binary)")
	flag.StringVar(&f.mode, "mode", "", "launch mode: exec (hand over the terminal) or pty (capture output)")
	flag.StringVar(&f.python, "python", "", "python interpreter command")
	flag.StringVar(&f.notebook, "notebook", "", "notebook server command")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: demolauncher [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Browse a folder of demos as tiles; run scripts and notebooks,\n")
		fmt.Fprintf(os.Stderr, "read markdown and text files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return f
}

func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Override(f.root, f.mode, f.python, f.notebook); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// commands resolves the configured executables to absolute paths. A missing
// interpreter is fatal; a missing notebook server only disables notebook launches.
func commands(cfg config.Config) (launch.Commands, error) {
	py, err := launch.ParseCommand(cfg.Launch.Python)
	if err != nil {
		return launch.Commands{}, err
	}
	py, err = launch.Resolve(py)
	if err != nil {
		return launch.Commands{}, fmt.Errorf("python interpreter: %w", err)
	}
	nb, err := launch.ParseCommand(cfg.Launch.Notebook)
	if err != nil {
		return launch.Commands{}, err
	}
	if resolved, err := launch.Resolve(nb); err != nil {
		log.Printf("demolauncher: notebook server unavailable, notebook launches will fail: %v", err)
	} else {
		nb = resolved
	}
	return launch.Commands{Python: py, Notebook: nb}, nil
}

func runner(cfg config.Config) launch.Runner {
	if cfg.Launch.Mode == config.ModePTY {
		return &launch.PTYRunner{Size: launch.Size{
			Rows: uint16(cfg.Launch.PTYRows),
			Cols: uint16(cfg.Launch.PTYCols),
		}}
	}
	return launch.ExecRunner{}
}

func run(f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(cfg.Log.File, "demolauncher")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.Printf("demolauncher: root=%s mode=%s python=%q notebook=%q", cfg.Root, cfg.Launch.Mode, cfg.Launch.Python, cfg.Launch.Notebook)

	cmds, err := commands(cfg)
	if err != nil {
		return err
	}
	cursor, err := browse.NewCursor(cfg.Root)
	if err != nil {
		return err
	}
	cursor.ShowHidden = cfg.UI.ShowHidden

	ctx := context.Background()
	tp, err := trace.Setup(ctx)
	if err != nil {
		log.Printf("demolauncher: tracing disabled: %v", err)
		tp = trace.Disabled()
	}
	if tp.Enabled() {
		log.Printf("demolauncher: exporting launch spans to %s", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			log.Printf("demolauncher: trace shutdown: %v", err)
		}
	}()

	watcher, err := browse.NewWatcher()
	if err != nil {
		log.Printf("demolauncher: live refresh disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	r := runner(cfg)
	if c, ok := r.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Printf("demolauncher: stop running demos: %v", err)
			}
		}()
	}

	m := ui.NewAppModel(ui.Options{
		Cursor:    cursor,
		Launcher:  launch.New(cmds, r, tp.Tracer()),
		Watcher:   watcher,
		Markdown:  ui.NewMarkdownRenderer(cfg.UI.MarkdownStyle),
		Flash:     cfg.UI.Flash,
		TileWidth: cfg.UI.TileWidth,
	})
	m.Ctx = ctx

	p := tea.NewProgram(m.AsTeaModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "demolauncher: %v\n", err)
		os.Exit(1)
	}
}
