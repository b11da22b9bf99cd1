package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mrdg/tones/audio"
)

func TestRenderKeys(t *testing.T) {
	layout, err := audio.NewLayout("test", []string{"C4", "A4"}, map[byte]string{
		'a': "C4",
		' ': "C4",
		'l': "A4",
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	renderKeys(layout, &buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if want, got := 2, len(lines); want != got {
		t.Fatalf("want %v lines, got %v:\n%s", want, got, buf.String())
	}
	if !strings.Contains(lines[0], "261.63 Hz") || !strings.HasSuffix(lines[0], "space a") {
		t.Errorf("wrong line for C4: %q", lines[0])
	}
	if !strings.Contains(lines[1], "440.00 Hz") || !strings.HasSuffix(lines[1], "l") {
		t.Errorf("wrong line for A4: %q", lines[1])
	}
}

func TestRenderVoices(t *testing.T) {
	r, engine, layout := testResolver(t)

	var buf bytes.Buffer
	renderVoices(engine, layout, &buf)
	if !strings.Contains(buf.String(), "silent") {
		t.Errorf("want silent, got %q", buf.String())
	}

	r.Press('1')
	r.Press('8')
	engine.Process(make([]float32, audio.SoundDurationFrames/2))
	r.Press('8')

	buf.Reset()
	renderVoices(engine, layout, &buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if want, got := 2, len(lines); want != got {
		t.Fatalf("want %v lines, got %v:\n%s", want, got, buf.String())
	}
	if want, got := meterWidth/2, strings.Count(lines[0], "▮"); want != got {
		t.Errorf("C4: want %v filled cells, got %v", want, got)
	}
	if want, got := meterWidth, strings.Count(lines[1], "▮"); want != got {
		t.Errorf("C5: want %v filled cells, got %v", want, got)
	}
	if !strings.HasPrefix(lines[0], "C4") || !strings.HasPrefix(lines[1], "C5") {
		t.Errorf("unexpected labels:\n%s", buf.String())
	}
}

func TestKeyName(t *testing.T) {
	for code, want := range map[int]string{
		' ': "space",
		'a': "a",
		';': ";",
		9:   "#9",
		200: "#200",
	} {
		if got := keyName(code); want != got {
			t.Errorf("%d: want %q, got %q", code, want, got)
		}
	}
}
