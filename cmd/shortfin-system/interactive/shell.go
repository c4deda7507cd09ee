// Package interactive provides the inspection shell for shortfin-system.
package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/raikonenfnu/shark-ai/pkg/local"
)

// Shell handles interactive mode for shortfin-system. It inspects a live
// system and can create and close scopes against it.
type Shell struct {
	sys *local.System
	rl  *readline.Instance

	// Open scopes by ID prefix shown to the user.
	scopes map[string]*local.Scope
}

// New creates a shell bound to sys.
func New(sys *local.System) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "system> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{
		sys:    sys,
		rl:     rl,
		scopes: make(map[string]*local.Scope),
	}, nil
}

// Run starts the interactive command loop. It returns when the user
// exits or ctx is cancelled; any scopes the user left open are closed.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()
	defer s.closeAllScopes()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "state":
			fmt.Fprintf(s.rl.Stdout(), "%s (%s)\n", s.sys.State(), s.sys.ID())

		case "nodes":
			s.cmdNodes()

		case "devices", "d":
			s.cmdDevices()

		case "device":
			s.cmdDevice(args)

		case "workers", "w":
			s.cmdWorkers()

		case "scope":
			s.cmdScope(args)

		case "exit", "quit", "q":
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `Commands:
  state               show system state
  nodes               list affinity nodes
  devices, d          list devices in system order
  device <name>       show one device
  workers, w          list workers
  scope new           create a scope (retains the system)
  scope list          list open scopes
  scope close <id>    close a scope
  exit, quit, q       exit`)
}

func (s *Shell) cmdNodes() {
	nodes := s.sys.Nodes()
	fmt.Fprintf(s.rl.Stdout(), "%d node(s)\n", len(nodes))
	for _, node := range nodes {
		count := 0
		for _, dev := range s.sys.Devices() {
			if dev.Node() == node.Ordinal() {
				count++
			}
		}
		fmt.Fprintf(s.rl.Stdout(), "  node%d: %d device(s)\n", node.Ordinal(), count)
	}
}

func (s *Shell) cmdDevices() {
	for i, dev := range s.sys.Devices() {
		fmt.Fprintf(s.rl.Stdout(), "  [%d] %-8s node %d\n", i, dev.Name(), dev.Node())
	}
}

func (s *Shell) cmdDevice(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: device <name>")
		return
	}
	dev, ok := s.sys.NamedDevice(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "no device %q\n", args[0])
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s: node %d\n", dev.Name(), dev.Node())
}

func (s *Shell) cmdWorkers() {
	for _, w := range s.sys.Workers() {
		state := "stopped"
		if w.Running() {
			state = "running"
		}
		fmt.Fprintf(s.rl.Stdout(), "  %s %s (%s)\n", w.Name(), state, w.ID())
	}
}

func (s *Shell) cmdScope(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "usage: scope new | scope list | scope close <id>")
		return
	}
	switch args[0] {
	case "new":
		scope, err := s.sys.CreateScope()
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "CreateScope: %v\n", err)
			return
		}
		id := shortID(scope.ID())
		s.scopes[id] = scope
		fmt.Fprintf(s.rl.Stdout(), "scope %s: %d device(s)\n", id, len(scope.Devices()))

	case "list":
		if len(s.scopes) == 0 {
			fmt.Fprintln(s.rl.Stdout(), "no open scopes")
			return
		}
		for id, scope := range s.scopes {
			fmt.Fprintf(s.rl.Stdout(), "  %s: %d device(s)\n", id, len(scope.Devices()))
		}

	case "close":
		if len(args) != 2 {
			fmt.Fprintln(s.rl.Stdout(), "usage: scope close <id>")
			return
		}
		scope, ok := s.scopes[args[1]]
		if !ok {
			fmt.Fprintf(s.rl.Stdout(), "no open scope %q\n", args[1])
			return
		}
		delete(s.scopes, args[1])
		if err := scope.Close(); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "close: %v\n", err)
		}

	default:
		fmt.Fprintf(s.rl.Stdout(), "unknown scope command: %s\n", args[0])
	}
}

func (s *Shell) closeAllScopes() {
	for id, scope := range s.scopes {
		delete(s.scopes, id)
		_ = scope.Close()
	}
}

// shortID trims a UUID to its first group for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
