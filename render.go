package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mrdg/tones/audio"
)

// renderKeys prints which keys play which pitch, one line per voice.
func renderKeys(layout *audio.Layout, w io.Writer) {
	keys := make([][]string, len(layout.Pitches))
	for _, b := range layout.Bindings() {
		v, _ := layout.Lookup(b.Code)
		keys[v] = append(keys[v], keyName(b.Code))
	}
	for v, p := range layout.Pitches {
		label := colorize(fmt.Sprintf("%-4s", p.Label), colorBlue)
		fmt.Fprintf(w, "%s %7.2f Hz  %s\n", label, p.Freq, strings.Join(keys[v], " "))
	}
}

const meterWidth = 20

// renderVoices prints a level meter for every voice that is still sounding.
func renderVoices(engine *audio.Engine, layout *audio.Layout, w io.Writer) {
	var active int
	for v, p := range layout.Pitches {
		frames := engine.FramesRemaining(v)
		if frames == 0 {
			continue
		}
		active++
		filled := (frames*meterWidth + audio.SoundDurationFrames - 1) / audio.SoundDurationFrames
		meter := colorize(strings.Repeat("▮", filled), colorGreen) + strings.Repeat("▯", meterWidth-filled)
		fmt.Fprintf(w, "%-4s %s %5d\n", p.Label, meter, frames)
	}
	if active == 0 {
		fmt.Fprintln(w, colorize("silent", colorMagenta))
	}
}

func keyName(code int) string {
	switch {
	case code == ' ':
		return "space"
	case code > ' ' && code < 127:
		return string(rune(code))
	default:
		return "#" + strconv.Itoa(code)
	}
}

const (
	colorBlack = iota + 30
	colorRed
	colorGreen
	colorYellow
	colorBlue
	colorMagenta
)

func colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, text)
}
