package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mrdg/tones/audio"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		layoutName = flag.String("layout", audio.DefaultLayout, "key layout: "+strings.Join(audio.LayoutNames(), ", "))
		layoutFile = flag.String("layout-file", "", "load the key layout from a JSON file")
		backend    = flag.String("backend", "portaudio", "audio backend: portaudio or oto")
		amplitude  = flag.Float64("amplitude", 0.2, "amplitude of a single voice, 0-1")
		echo       = flag.Bool("echo", false, "print the code of every key")
		console    = flag.Bool("console", false, "read commands instead of key presses")
		run        = flag.String("run", "", "execute the commands in this file first")
		render     = flag.String("render", "", "render the -run script to this WAV file instead of playing it")
	)
	flag.Parse()
	log.SetFlags(0)

	layout, err := loadLayout(*layoutName, *layoutFile)
	if err != nil {
		log.Fatal(err)
	}
	engine := audio.NewEngine(layout.Freqs())
	if err := engine.Set(audio.PropAmplitude, *amplitude); err != nil {
		log.Fatal(err)
	}
	env := &env{
		engine: engine,
		layout: layout,
		clock:  wallClock{},
		out:    os.Stdout,
	}
	ctx := context.Background()

	if *render != "" {
		if *run == "" {
			log.Fatal("-render needs a script to render, use -run")
		}
		if err := renderScript(ctx, env, *run, *render); err != nil {
			log.Fatal(err)
		}
		return
	}

	sink, err := openBackend(*backend, engine)
	if err != nil {
		log.Fatal(err)
	}
	if err := sink.Start(); err != nil {
		closeBackend(sink)
		log.Fatal(err)
	}

	err = play(ctx, env, *run, *console, *echo)
	if err := sink.Stop(); err != nil {
		log.Printf("warning: %v", err)
	}
	closeBackend(sink)
	if err != nil {
		log.Fatal(err)
	}
}

func loadLayout(name, file string) (*audio.Layout, error) {
	if file != "" {
		return audio.LoadLayout(file)
	}
	return audio.BuiltinLayout(name)
}

func openBackend(name string, source audio.Source) (audio.Backend, error) {
	switch name {
	case "portaudio":
		return audio.NewSink(source)
	case "oto":
		return audio.NewOtoSink(source)
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}

func closeBackend(b audio.Backend) {
	if err := b.Close(); err != nil {
		log.Printf("warning: %v", err)
	}
}

// play runs the optional script and then reads commands or keys until the
// user quits.
func play(ctx context.Context, env *env, script string, console, echo bool) error {
	if script != "" {
		if err := runFile(ctx, env, script); err != nil {
			return err
		}
	}
	if console {
		fmt.Fprintln(env.out, "Type help for a list of commands, quit to exit.")
		return repl(ctx, env)
	}

	fmt.Fprintf(env.out, "Layout %s. Press keys to play, ESC to quit.\n", env.layout.Name)
	renderKeys(env.layout, env.out)

	kb, err := openKeyboard(os.Stdin)
	if err != nil {
		return err
	}
	defer func() {
		if err := kb.Close(); err != nil {
			log.Printf("warning: restore terminal: %v", err)
		}
	}()

	var w io.Writer
	if echo {
		w = env.out
	}
	resolver := audio.NewResolver(env.layout, env.engine)
	keys := readKeys(os.Stdin)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return playKeys(ctx, keys, resolver, w)
	})
	g.Go(func() error {
		return waitForSignal(ctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func runFile(ctx context.Context, env *env, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := runScript(ctx, env, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// renderScript plays a script into a WAV file without opening an audio device.
func renderScript(ctx context.Context, env *env, script, output string) error {
	rec := audio.NewRecorder(env.engine)
	env.clock = renderClock{rec: rec}
	if err := runFile(ctx, env, script); err != nil {
		return err
	}
	rec.Drain(env.engine)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := rec.WriteWAV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(env.out, "wrote %s (%d frames)\n", output, rec.Len())
	return nil
}
