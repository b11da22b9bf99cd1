package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrdg/tones/audio"
	"github.com/mrdg/tones/dub"
)

// errQuit ends the input loop without an error.
var errQuit = errors.New("quit")

type env struct {
	engine *audio.Engine
	layout *audio.Layout
	clock  clock
	out    io.Writer
}

// clock lets scripts wait on the real audio stream or on an offline recording.
type clock interface {
	wait(ctx context.Context, d time.Duration) error
}

type wallClock struct{}

func (wallClock) wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type renderClock struct {
	rec *audio.Recorder
}

func (c renderClock) wait(_ context.Context, d time.Duration) error {
	c.rec.Advance(audio.Frames(d))
	return nil
}

type command struct {
	name  string
	help  string
	run   func(context.Context, *env, []dub.Node) error
	arity int // -n means len(args) must be >= n
}

var commands []command

func init() {
	commands = []command{
		{"play", "play <pitch>...  trigger one or more pitches", playCommand, -1},
		{"wait", "wait <seconds>   let time pass", waitCommand, 1},
		{"set", "set <prop> <value>", setCommand, 2},
		{"get", "get <prop>", getCommand, 1},
		{"keys", "keys             list key bindings", keysCommand, 0},
		{"voices", "voices           show sounding voices", voicesCommand, 0},
		{"help", "help             list commands", helpCommand, 0},
		{"quit", "quit", quitCommand, 0},
	}
}

func (e *env) eval(ctx context.Context, input string) error {
	cmd, err := dub.Parse(input)
	if err != nil {
		return err
	}
	name := string(cmd.Name)
	for _, c := range commands {
		if name != c.name {
			continue
		}
		if c.arity < 0 {
			arity := -c.arity
			if len(cmd.Args) < arity {
				return fmt.Errorf("%s: wrong number of arguments: need at least %v, got %v",
					c.name, arity, len(cmd.Args))
			}
		} else if len(cmd.Args) != c.arity {
			return fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				c.name, c.arity, len(cmd.Args))
		}
		if err := c.run(ctx, e, cmd.Args); err != nil {
			if err == errQuit {
				return err
			}
			return fmt.Errorf("%s error: %w", c.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", name)
}

func playCommand(_ context.Context, env *env, args []dub.Node) error {
	var labels []string
	if err := readArgs(args, &labels); err != nil {
		return err
	}
	voices := make([]int, len(labels))
	for i, label := range labels {
		v, ok := env.layout.Voice(label)
		if !ok {
			return fmt.Errorf("pitch %s is not in layout %s", label, env.layout.Name)
		}
		voices[i] = v
	}
	for _, v := range voices {
		env.engine.Trigger(v)
	}
	return nil
}

func waitCommand(ctx context.Context, env *env, args []dub.Node) error {
	var seconds float64
	if err := readArgs(args, &seconds); err != nil {
		return err
	}
	if seconds < 0 {
		return fmt.Errorf("negative duration: %v", seconds)
	}
	return env.clock.wait(ctx, time.Duration(seconds*float64(time.Second)))
}

func setCommand(_ context.Context, env *env, args []dub.Node) error {
	var prop string
	var value float64
	if err := readArgs(args, &prop, &value); err != nil {
		return err
	}
	return env.engine.Set(prop, value)
}

func getCommand(_ context.Context, env *env, args []dub.Node) error {
	var prop string
	if err := readArgs(args, &prop); err != nil {
		return err
	}
	v, err := env.engine.Get(prop)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "%s = %v\n", prop, v)
	return nil
}

func keysCommand(_ context.Context, env *env, _ []dub.Node) error {
	renderKeys(env.layout, env.out)
	return nil
}

func voicesCommand(_ context.Context, env *env, _ []dub.Node) error {
	renderVoices(env.engine, env.layout, env.out)
	return nil
}

func helpCommand(_ context.Context, env *env, _ []dub.Node) error {
	for _, c := range commands {
		fmt.Fprintln(env.out, c.help)
	}
	fmt.Fprintf(env.out, "properties: %s\n", strings.Join(env.engine.Keys(), ", "))
	return nil
}

func quitCommand(context.Context, *env, []dub.Node) error {
	return errQuit
}

// readArgs converts args into the destinations in slots. A trailing
// *[]string consumes all remaining arguments.
func readArgs(args []dub.Node, slots ...interface{}) error {
	for n, dest := range slots {
		if rest, ok := dest.(*[]string); ok {
			for _, arg := range args[n:] {
				s, err := stringArg(arg)
				if err != nil {
					return err
				}
				*rest = append(*rest, s)
			}
			return nil
		}
		if n >= len(args) {
			return errors.New("not enough arguments")
		}
		arg := args[n]
		switch p := dest.(type) {
		case *string:
			s, err := stringArg(arg)
			if err != nil {
				return err
			}
			*p = s
		case *float64:
			switch v := arg.(type) {
			case dub.Float:
				*p = float64(v)
			case dub.Int:
				*p = float64(v)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	if len(args) > len(slots) {
		return errors.New("too many arguments")
	}
	return nil
}

func stringArg(arg dub.Node) (string, error) {
	switch s := arg.(type) {
	case dub.String:
		return string(s), nil
	case dub.Identifier:
		return string(s), nil
	default:
		return "", fmt.Errorf("argument error: expected a string or identifier")
	}
}
