package metadata

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Fields
		cleaned string
	}{{
		name:    "trailing tags",
		in:      "Buy milk [due:: tomorrow] [start:: 9:00]",
		want:    Fields{{Key: "due", Value: "tomorrow"}, {Key: "start", Value: "9:00"}},
		cleaned: "Buy milk",
	}, {
		name:    "no tags",
		in:      "  plain text ",
		cleaned: "plain text",
	}, {
		name:    "leading and inline tags",
		in:      "[start:: 9:00] standup [room:: 4b] notes",
		want:    Fields{{Key: "start", Value: "9:00"}, {Key: "room", Value: "4b"}},
		cleaned: "standup  notes",
	}, {
		name:    "repeated key keeps first position, last value",
		in:      "x [a:: 1] [b:: 2] [a:: 3]",
		want:    Fields{{Key: "a", Value: "3"}, {Key: "b", Value: "2"}},
		cleaned: "x",
	}, {
		name:    "only tags",
		in:      "[start:: 9:00] [end:: 10:00]",
		want:    Fields{{Key: "start", Value: "9:00"}, {Key: "end", Value: "10:00"}},
		cleaned: "",
	}, {
		name:    "brackets that are not tags survive",
		in:      "[wip] refactor [owner:: sam]",
		want:    Fields{{Key: "owner", Value: "sam"}},
		cleaned: "[wip] refactor",
	}, {
		name:    "unknown keys kept verbatim",
		in:      "call [Weird Key:: some value, with commas]",
		want:    Fields{{Key: "Weird Key", Value: "some value, with commas"}},
		cleaned: "call",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cleaned := Extract(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("fields: got %#v, want %#v", got, tt.want)
			}
			if cleaned != tt.cleaned {
				t.Errorf("cleaned: got %q, want %q", cleaned, tt.cleaned)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	fields := Fields{{Key: "due", Value: "tomorrow"}, {Key: "start", Value: "9:00"}}
	if got, want := Encode("Buy milk", fields), "Buy milk [due:: tomorrow] [start:: 9:00]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := Encode("", fields[:1]), "[due:: tomorrow]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := Encode("unchanged", nil); got != "unchanged" {
		t.Fatalf("got %q", got)
	}
}

func TestRoundTripIsWhitespaceEquivalent(t *testing.T) {
	inputs := []string{
		"Buy milk [due:: tomorrow] [start:: 9:00]",
		"no tags at all",
		"[a:: 1] leading",
		"",
	}
	for _, in := range inputs {
		fields, cleaned := Extract(in)
		out := Encode(cleaned, fields)
		again, cleanedAgain := Extract(out)
		if !reflect.DeepEqual(again, fields) {
			t.Errorf("%q: fields changed %v -> %v", in, fields, again)
		}
		if strings.Join(strings.Fields(cleanedAgain), " ") != strings.Join(strings.Fields(cleaned), " ") {
			t.Errorf("%q: text changed %q -> %q", in, cleaned, cleanedAgain)
		}
	}
}

func TestFieldsSetDelete(t *testing.T) {
	var f Fields
	f = f.Set("a", "1").Set("b", "2").Set("a", "3")
	if got := f.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys: %v", got)
	}
	if v, ok := f.Get("a"); !ok || v != "3" {
		t.Fatalf("get a: %q %v", v, ok)
	}
	clone := f.Clone()
	f = f.Delete("a")
	if _, ok := f.Get("a"); ok {
		t.Fatalf("a should be gone")
	}
	if v, _ := clone.Get("a"); v != "3" {
		t.Fatalf("clone changed: %v", clone)
	}
	if got := clone.Map(); got["b"] != "2" {
		t.Fatalf("map: %v", got)
	}
}
