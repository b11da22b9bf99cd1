package audio

import (
	"reflect"
	"testing"
)

func TestProps(t *testing.T) {
	props := NewProps()
	level := props.MustRegister("level", setFloat64(-1, 1), 0.5)

	if err := props.Set("level", 1); err != nil {
		t.Fatal(err)
	}
	if want, got := 1.0, level.Load().(float64); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
	for _, v := range []interface{}{2.0, -3, "loud"} {
		if err := props.Set("level", v); err == nil {
			t.Errorf("expected error setting level to %v", v)
		}
	}
	if want, got := 1.0, level.Load().(float64); want != got {
		t.Errorf("failed set changed value: want %v, got %v", want, got)
	}
	if err := props.Set("missing", 1.0); err == nil {
		t.Error("expected error for unknown property")
	}
	if _, err := props.Get("missing"); err == nil {
		t.Error("expected error for unknown property")
	}
	v, err := props.Get("level")
	if err != nil {
		t.Fatal(err)
	}
	if want, got := 1.0, v; want != got {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestPropsRegisterInvalid(t *testing.T) {
	props := NewProps()
	if _, err := props.Register("level", setFloat64(0, 1), 5.0); err == nil {
		t.Error("expected error for out of range initial value")
	}
	if want, got := []string{}, props.Keys(); !reflect.DeepEqual(want, got) {
		t.Errorf("want keys %v, got %v", want, got)
	}
	props.MustRegister("b", setAmplitude, 0.)
	props.MustRegister("a", setAmplitude, 1.)
	if want, got := []string{"a", "b"}, props.Keys(); !reflect.DeepEqual(want, got) {
		t.Errorf("want keys %v, got %v", want, got)
	}
}
