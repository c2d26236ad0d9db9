package enum_test

import (
	"testing"

	"github.com/jrife/recordkeeper/records/enum"
)

var moods = enum.Names{"Happy", "Sad", "Anxious"}

func TestNames(t *testing.T) {
	for i, name := range moods {
		v, err := moods.Parse("mood", []byte(name))

		if err != nil || int(v) != i {
			t.Fatalf("expected %d, nil, got %d, %#v", i, v, err)
		}

		text, err := moods.MarshalText("mood", v)

		if err != nil || string(text) != name {
			t.Fatalf("expected %s, nil, got %s, %#v", name, text, err)
		}
	}

	if _, err := moods.Parse("mood", []byte("happy")); err == nil {
		t.Fatalf("expected names to be case sensitive")
	}

	if _, err := moods.MarshalText("mood", 3); err == nil {
		t.Fatalf("expected an out of range value to fail")
	}

	if moods.Valid(3) || moods.String(3) != "Unknown(3)" {
		t.Fatalf("expected 3 to be invalid")
	}
}
