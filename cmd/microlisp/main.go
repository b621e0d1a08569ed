package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	lisp "github.com/lazear/microlisp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		gcThreshold int
		strict      bool
		permissive  bool
		logLevel    string
		noRepl      bool
	)

	cmd := &cobra.Command{
		Use:   "microlisp [files...]",
		Short: "A small Scheme-like interpreter with a tracing mark-and-sweep collector",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := lisp.NewConfig()
			cfg.GCThreshold = gcThreshold
			mode := strict
			if cmd.Flags().Changed("permissive") {
				mode = !permissive
			}
			cfg.Strict = mode
			cfg.LogLevel = logLevel

			in := lisp.NewInterpreter(cfg)

			for _, path := range args {
				if _, err := in.LoadFile(path); err != nil {
					in.Log.WithError(err).WithField("file", path).Error("failed to load file")
					return err
				}
			}

			if noRepl {
				return nil
			}
			return runRepl(in)
		},
	}

	cmd.Flags().IntVar(&gcThreshold, "gc-threshold", 255, "object count that triggers a collection pass")
	cmd.Flags().BoolVar(&strict, "strict", false, "fatal on type errors instead of substituting nil")
	cmd.Flags().BoolVar(&permissive, "permissive", true, "substitute nil on type errors instead of terminating (default)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "logrus level for GC/load diagnostics")
	cmd.Flags().BoolVar(&noRepl, "no-repl", false, "exit after loading files instead of entering the REPL")

	return cmd
}

// runRepl drives the `user> ` prompt loop of spec.md §6: continuation
// prompts (`..` per nesting level) while inside an unclosed form, and a
// `====> ` prefix on every printed result.
func runRepl(in *lisp.Interpreter) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "user> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	reader := lisp.NewReader(in.Heap, in.Symtab, &lineRuneReader{rl: rl}, "<repl>")
	reader.Interactive = true
	reader.Prompter = rl.Stdout()

	for {
		exp, rerr := reader.Read()
		if rerr != nil {
			in.HandleError(rerr)
			continue
		}
		if exp == nil {
			return nil
		}
		val, everr := in.Eval(exp, in.Global)
		if everr != nil {
			in.HandleError(everr)
			continue
		}
		fmt.Printf("====> %s\n", lisp.PrintString(val))
	}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.microlisp_history"
}

// lineRuneReader adapts readline's line-at-a-time interface to the
// io.RuneReader the reader expects, re-inserting the newline readline
// strips from each returned line so the reader's own continuation-prompt
// and comment-handling logic still sees it.
type lineRuneReader struct {
	rl  *readline.Instance
	buf strings.Reader
	ok  bool
}

func (l *lineRuneReader) ReadRune() (rune, int, error) {
	for {
		if l.ok {
			r, size, err := l.buf.ReadRune()
			if err == nil {
				return r, size, nil
			}
			l.ok = false
		}
		line, err := l.rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return 0, 0, io.EOF
		}
		if err != nil {
			return 0, 0, err
		}
		l.buf = *strings.NewReader(line + "\n")
		l.ok = true
	}
}
