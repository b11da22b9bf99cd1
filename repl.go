package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/mrdg/tones/dub"
)

func repl(ctx context.Context, env *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			fmt.Fprintln(env.out, err)
			continue
		}
		switch err := env.eval(ctx, line); err {
		case nil, dub.ErrEmpty:
		case errQuit:
			return nil
		default:
			fmt.Fprintln(env.out, err)
		}
	}
}

// runScript evaluates every line of r. It stops at the first error or at a
// quit command.
func runScript(ctx context.Context, env *env, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		switch err := env.eval(ctx, scanner.Text()); err {
		case nil, dub.ErrEmpty:
		case errQuit:
			return nil
		default:
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}
