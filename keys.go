package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrdg/tones/audio"
	"golang.org/x/term"
)

// keyboard puts a terminal into raw mode so that every key press arrives as
// soon as it is typed. Input that is not a terminal is read as is.
type keyboard struct {
	fd    int
	state *term.State
}

func openKeyboard(f *os.File) (*keyboard, error) {
	k := &keyboard{fd: int(f.Fd())}
	if !term.IsTerminal(k.fd) {
		return k, nil
	}
	state, err := term.MakeRaw(k.fd)
	if err != nil {
		return nil, fmt.Errorf("terminal raw mode: %w", err)
	}
	k.state = state
	return k, nil
}

// Close restores the terminal state.
func (k *keyboard) Close() error {
	if k.state == nil {
		return nil
	}
	return term.Restore(k.fd, k.state)
}

// readKeys delivers every byte of r as a key code. The channel is closed
// when r is exhausted.
func readKeys(r io.Reader) <-chan int {
	ch := make(chan int, 64)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			b, err := br.ReadByte()
			if err != nil {
				if err != io.EOF {
					log.Printf("warning: read key: %v", err)
				}
				return
			}
			ch <- int(b)
		}
	}()
	return ch
}

// playKeys triggers a voice for every bound key until a quit key is pressed
// or the keys run out. Both end with errQuit.
func playKeys(ctx context.Context, keys <-chan int, r *audio.Resolver, echo io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case code, ok := <-keys:
			if !ok {
				return errQuit
			}
			if echo != nil {
				// raw mode does not translate \n
				fmt.Fprintf(echo, "%d\r\n", code)
			}
			if audio.IsQuit(code) {
				return errQuit
			}
			r.Press(code)
		}
	}
}

// waitForSignal returns errQuit when the process is asked to stop.
func waitForSignal(ctx context.Context) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ch)
	select {
	case <-ctx.Done():
		return nil
	case sig := <-ch:
		log.Printf("caught signal %s: shutting down", sig)
		return errQuit
	}
}
