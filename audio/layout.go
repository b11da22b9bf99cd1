package audio

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// KeyEscape is the key code reserved for quitting. It can never be bound to a pitch.
const KeyEscape = 27

// NumKeyCodes is the size of the key table. Codes outside [0, NumKeyCodes) never match.
const NumKeyCodes = 256

// Pitch is one entry of a layout's pitch table. Its position in the table is
// the index of the voice that plays it.
type Pitch struct {
	Label string
	Freq  float64
}

// Layout binds key codes to pitches. It is built once and not modified afterwards.
type Layout struct {
	Name    string
	Pitches []Pitch
	keys    [NumKeyCodes]int // voice index + 1, 0 means unbound
}

// Lookup returns the voice bound to a key code.
func (l *Layout) Lookup(code int) (int, bool) {
	if code < 0 || code >= NumKeyCodes {
		return 0, false
	}
	v := l.keys[code] - 1
	return v, v >= 0
}

// Voice returns the voice index for a pitch label.
func (l *Layout) Voice(label string) (int, bool) {
	for i, p := range l.Pitches {
		if strings.EqualFold(p.Label, label) {
			return i, true
		}
	}
	return 0, false
}

// Freqs returns the frequency of every voice, in voice order.
func (l *Layout) Freqs() []float64 {
	freqs := make([]float64, len(l.Pitches))
	for i, p := range l.Pitches {
		freqs[i] = p.Freq
	}
	return freqs
}

// Binding is a single key to pitch mapping.
type Binding struct {
	Code  int
	Label string
}

// Bindings lists all key bindings ordered by voice, then by key code.
func (l *Layout) Bindings() []Binding {
	var bindings []Binding
	for code, v := range l.keys {
		if v == 0 {
			continue
		}
		bindings = append(bindings, Binding{Code: code, Label: l.Pitches[v-1].Label})
	}
	sort.SliceStable(bindings, func(i, j int) bool {
		vi, _ := l.Lookup(bindings[i].Code)
		vj, _ := l.Lookup(bindings[j].Code)
		return vi < vj
	})
	return bindings
}

func (l *Layout) bind(key byte, label string) error {
	if key == KeyEscape {
		return fmt.Errorf("key code %d is reserved for quitting", KeyEscape)
	}
	v, ok := l.Voice(label)
	if !ok {
		return fmt.Errorf("key %q: unknown pitch %s", key, label)
	}
	l.keys[key] = v + 1
	return nil
}

// NewLayout builds a layout from pitch labels and a key to label mapping.
// Frequencies are derived from the labels.
func NewLayout(name string, labels []string, keys map[byte]string) (*Layout, error) {
	pitches := make([]Pitch, len(labels))
	for i, label := range labels {
		note, err := ParsePitch(label)
		if err != nil {
			return nil, err
		}
		pitches[i] = Pitch{Label: label, Freq: noteToFreq(note)}
	}
	return newLayout(name, pitches, keys)
}

func newLayout(name string, pitches []Pitch, keys map[byte]string) (*Layout, error) {
	if len(pitches) == 0 {
		return nil, fmt.Errorf("layout %s: no pitches", name)
	}
	l := &Layout{Name: name, Pitches: pitches}
	seen := make(map[string]bool, len(pitches))
	for _, p := range pitches {
		label := strings.ToUpper(p.Label)
		if seen[label] {
			return nil, fmt.Errorf("layout %s: duplicate pitch %s", name, p.Label)
		}
		seen[label] = true
		if p.Freq <= 0 || p.Freq >= SampleRate/2 {
			return nil, fmt.Errorf("layout %s: pitch %s: frequency out of range: %v", name, p.Label, p.Freq)
		}
	}
	for key, label := range keys {
		if err := l.bind(key, label); err != nil {
			return nil, fmt.Errorf("layout %s: %w", name, err)
		}
	}
	return l, nil
}

// ParsePitch converts a label like "C4", "F#3" or "Bb2" to a MIDI note number.
func ParsePitch(label string) (int, error) {
	if len(label) < 2 {
		return 0, fmt.Errorf("invalid pitch: %q", label)
	}
	semitone, ok := map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}[upper(label[0])]
	if !ok {
		return 0, fmt.Errorf("invalid pitch name: %q", label)
	}
	rest := label[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in pitch %q", label)
	}
	note := (octave+1)*12 + semitone
	if note < 0 || note > 127 {
		return 0, fmt.Errorf("pitch out of range: %q", label)
	}
	return note, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// noteToFreq returns the equal tempered frequency of a MIDI note, rounded to
// 0.01 Hz.
func noteToFreq(note int) float64 {
	f := math.Pow(2, float64(note-69)/12.0) * 440
	return math.Round(f*100) / 100
}

var layouts = map[string]func() (*Layout, error){
	"diatonic": func() (*Layout, error) {
		return rowLayout("diatonic", "123456789", []string{
			"C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5", "D5",
		})
	},
	"chromatic": func() (*Layout, error) {
		return rowLayout("chromatic", "awsedftgyhujkolp;", chromatic("C4", 17))
	},
	"piano": func() (*Layout, error) {
		return rowLayout("piano", "zsxdcvgbhnjmq2w3er5t6y7ui9o0p", chromatic("C3", 29))
	},
}

// DefaultLayout is the layout used when none is configured.
const DefaultLayout = "diatonic"

// LayoutNames lists the built-in layouts.
func LayoutNames() []string {
	var names []string
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinLayout returns one of the built-in layouts by name.
func BuiltinLayout(name string) (*Layout, error) {
	build, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout: %s (available: %s)", name, strings.Join(LayoutNames(), ", "))
	}
	return build()
}

// rowLayout binds the i-th key of row to the i-th label.
func rowLayout(name, row string, labels []string) (*Layout, error) {
	if len(row) != len(labels) {
		return nil, fmt.Errorf("layout %s: %d keys for %d pitches", name, len(row), len(labels))
	}
	keys := make(map[byte]string, len(row))
	for i := 0; i < len(row); i++ {
		keys[row[i]] = labels[i]
	}
	return NewLayout(name, labels, keys)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// chromatic returns n consecutive semitone labels starting at root.
func chromatic(root string, n int) []string {
	start, err := ParsePitch(root)
	if err != nil {
		panic(err)
	}
	labels := make([]string, n)
	for i := range labels {
		note := start + i
		labels[i] = noteNames[note%12] + strconv.Itoa(note/12-1)
	}
	return labels
}

// layoutFile is the JSON schema for layout files.
type layoutFile struct {
	Name    string `json:"name"`
	Pitches []struct {
		Label string  `json:"label"`
		Freq  float64 `json:"freq"`
	} `json:"pitches"`
	Keys map[string]string `json:"keys"`
}

// LoadLayout reads a layout from a JSON file. Pitches without an explicit
// frequency get the equal tempered one for their label.
func LoadLayout(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f layoutFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = path
	}
	pitches := make([]Pitch, len(f.Pitches))
	for i, p := range f.Pitches {
		freq := p.Freq
		if freq == 0 {
			note, err := ParsePitch(p.Label)
			if err != nil {
				return nil, fmt.Errorf("layout %s: %w", f.Name, err)
			}
			freq = noteToFreq(note)
		}
		pitches[i] = Pitch{Label: p.Label, Freq: freq}
	}
	keys := make(map[byte]string, len(f.Keys))
	for k, label := range f.Keys {
		if len(k) != 1 {
			return nil, fmt.Errorf("layout %s: key %q must be a single byte", f.Name, k)
		}
		keys[k[0]] = label
	}
	return newLayout(f.Name, pitches, keys)
}
