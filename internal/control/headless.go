package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"recaf/internal/config"
	"recaf/pkg/logging"
	pkgstrings "recaf/pkg/strings"
)

// pathWidth bounds file paths printed by recent.
const pathWidth = 72

// errExit is returned by the exit command to end the prompt loop.
var errExit = errors.New("exit")

type command struct {
	usage string
	help  string
	run   func(c *HeadlessController, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help": {
			usage: "help",
			help:  "List available commands",
			run:   (*HeadlessController).cmdHelp,
		},
		"load": {
			usage: "load <path>",
			help:  "Open a class or archive as the current workspace",
			run:   (*HeadlessController).cmdLoad,
		},
		"info": {
			usage: "info",
			help:  "Describe the current workspace",
			run:   (*HeadlessController).cmdInfo,
		},
		"config": {
			usage: "config [section]",
			help:  "Print configuration as YAML",
			run:   (*HeadlessController).cmdConfig,
		},
		"recent": {
			usage: "recent",
			help:  "List recently opened files",
			run:   (*HeadlessController).cmdRecent,
		},
		"save": {
			usage: "save",
			help:  "Write configuration to disk",
			run:   (*HeadlessController).cmdSave,
		},
		"exit": {
			usage: "exit",
			help:  "Leave the prompt",
			run:   func(*HeadlessController, context.Context, []string) error { return errExit },
		},
	}
	commands["quit"] = commands["exit"]
}

// HeadlessController runs without a user interface. Commands come from a
// script file, a terminal prompt, or piped standard input.
type HeadlessController struct {
	base
	in       io.Reader
	out      io.Writer
	terminal func() bool
}

// NewHeadless creates a headless controller reading commands from in and
// writing results to out. Nil streams default to the process's standard
// streams.
func NewHeadless(opts Options, in io.Reader, out io.Writer) *HeadlessController {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	c := &HeadlessController{base: newBase(opts), in: in, out: out}
	c.terminal = func() bool { return c.in == os.Stdin && readline.DefaultIsTerminal() }
	return c
}

func (c *HeadlessController) Headless() bool { return true }

// Setup initializes configuration and installs the controller.
func (c *HeadlessController) Setup() error {
	return c.setup(c)
}

// Start opens the initial workspace, then runs the script if one was given
// or reads commands until exit or end of input.
func (c *HeadlessController) Start(ctx context.Context) error {
	c.startWatcher()
	defer c.stopWatcher()

	if err := c.openInitialWorkspace(ctx); err != nil {
		return err
	}
	if c.opts.Script != "" {
		return c.RunScript(ctx, c.opts.Script)
	}
	if c.terminal() {
		return c.prompt(ctx)
	}
	return c.runLines(ctx, c.in, false)
}

// RunScript executes each non-blank, non-comment line of the file at path.
// Execution stops at the first failing command.
func (c *HeadlessController) RunScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	logging.Info("Headless", "Running script %s", path)
	return c.runLines(ctx, f, true)
}

func (c *HeadlessController) runLines(ctx context.Context, r io.Reader, strict bool) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := c.Execute(ctx, line)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			if strict {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (c *HeadlessController) prompt(ctx context.Context) error {
	names := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, name := range commandNames() {
		names = append(names, readline.PcItem(name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "recaf> ",
		HistoryFile:       filepath.Join(os.TempDir(), ".recaf_history"),
		AutoComplete:      readline.NewPrefixCompleter(names...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	logging.Info("Headless", "Type 'help' for available commands")
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if err := c.Execute(ctx, input); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

// Execute runs a single command line.
func (c *HeadlessController) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help' for a list", fields[0])
	}
	return cmd.run(c, ctx, fields[1:])
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *HeadlessController) cmdHelp(_ context.Context, _ []string) error {
	for _, name := range commandNames() {
		if name == "quit" {
			continue
		}
		cmd := commands[name]
		fmt.Fprintf(c.out, "  %-18s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (c *HeadlessController) cmdLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: load <path>")
	}
	ws, err := c.LoadWorkspace(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Loaded %s\n", ws)
	return nil
}

func (c *HeadlessController) cmdInfo(_ context.Context, _ []string) error {
	ws := c.state.Workspace()
	if ws == nil {
		fmt.Fprintln(c.out, "No workspace loaded")
		return nil
	}
	fmt.Fprintf(c.out, "Workspace: %s\n", ws.Name)
	fmt.Fprintf(c.out, "ID:        %s\n", ws.ID)
	fmt.Fprintf(c.out, "Kind:      %s\n", ws.Kind)
	fmt.Fprintf(c.out, "Source:    %s\n", ws.Source)
	fmt.Fprintf(c.out, "Entries:   %d\n", len(ws.Entries))
	return nil
}

func (c *HeadlessController) cmdConfig(_ context.Context, args []string) error {
	var (
		data []byte
		err  error
	)
	switch len(args) {
	case 0:
		data, err = c.config.DumpAll()
	case 1:
		data, err = c.config.DumpSection(args[0])
	default:
		return errors.New("usage: config [section]")
	}
	if err != nil {
		return err
	}
	_, err = c.out.Write(data)
	return err
}

func (c *HeadlessController) cmdRecent(_ context.Context, _ []string) error {
	var recent []string
	err := config.View(c.config, config.KeyBackend, func(b *config.Backend) {
		recent = slices.Clone(b.RecentFiles)
	})
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Fprintln(c.out, "No recent files")
		return nil
	}
	for i, path := range recent {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, pkgstrings.TruncateLeft(path, pathWidth))
	}
	return nil
}

func (c *HeadlessController) cmdSave(_ context.Context, _ []string) error {
	if err := c.config.Save(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Saved config to %s\n", c.config.Dir())
	return nil
}
