package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// newReplCmd opens an interactive session where each line is dispatched
// to the same subcommand tree used on the command line, letting a caller
// query several servers without relaunching the process each time.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session over the status subcommands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mcstatus> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		if err := dispatchLine(line); err != nil {
			fmt.Println("error:", err)
		}
	}
}

// dispatchLine re-invokes a fresh root command for each line, so every
// persistent flag and subcommand works exactly as it does outside the
// REPL.
func dispatchLine(line string) error {
	root := newRootCmd()
	root.SetArgs(strings.Fields(line))
	return root.Execute()
}
