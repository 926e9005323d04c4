package macro

import (
	"reflect"
	"testing"
)

func TestParseTapThenLiteral(t *testing.T) {
	got := Parse([]byte{0x01, 0x01, 0x04, 0x41}, nil)
	want := []Token{
		{Kind: TokenTap, Key: "KC_A"},
		{Kind: TokenText, Text: "A"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	if Render(got) != "{TAP(KC_A)}A" {
		t.Fatalf("Render = %q", Render(got))
	}
}

func TestParseDownUp(t *testing.T) {
	got := Parse([]byte{0x01, 0x02, 0xE0, 0x63, 0x01, 0x03, 0xE0}, nil)
	want := []Token{
		{Kind: TokenDown, Key: "KC_LCTL"},
		{Kind: TokenText, Text: "c"},
		{Kind: TokenUp, Key: "KC_LCTL"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
}

func TestParseDelay(t *testing.T) {
	got := Parse([]byte{'h', 'i', 0x01, 0x04, '1', '0', '0', '|', '!'}, nil)
	want := []Token{
		{Kind: TokenText, Text: "hi"},
		{Kind: TokenDelay, DelayMS: 100},
		{Kind: TokenText, Text: "!"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	if Render(got) != "hi{DELAY(100ms)}!" {
		t.Fatalf("Render = %q", Render(got))
	}
}

func TestParseDelayMissingTerminator(t *testing.T) {
	got := Parse([]byte{0x01, 0x04, '5', '0'}, nil)
	want := []Token{{Kind: TokenDelay, DelayMS: 50}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
}

func TestParseLayoutCharacters(t *testing.T) {
	// Unescaped HID codes resolve through the layout table.
	got := Render(Parse([]byte{0x04, 0x1D, 0x1C}, nil))
	if got != "ay." {
		t.Fatalf("default layout render = %q", got)
	}

	custom := Layout{0x04: 'q'}
	got = Render(Parse([]byte{0x04}, custom))
	if got != "q" {
		t.Fatalf("custom layout render = %q", got)
	}
}

func TestParseUnknownBytes(t *testing.T) {
	// 0x02 has no layout entry and is not printable.
	got := Parse([]byte{0x02}, nil)
	want := []Token{{Kind: TokenRaw, Raw: []byte{0x02}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	if got[0].String() != "{0x02}" {
		t.Fatalf("String = %q", got[0].String())
	}
}

func TestParseTruncatedEscape(t *testing.T) {
	// Escape prefix at end of data, and a tap with no keycode byte.
	got := Parse([]byte{0x01}, nil)
	want := []Token{{Kind: TokenRaw, Raw: []byte{0x01}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lone prefix: Parse = %v, want %v", got, want)
	}

	got = Parse([]byte{0x01, 0x01}, nil)
	want = []Token{{Kind: TokenRaw, Raw: []byte{0x01, 0x01}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("truncated tap: Parse = %v, want %v", got, want)
	}
}

func TestParseUnknownEscapedKeycode(t *testing.T) {
	got := Parse([]byte{0x01, 0x01, 0xA5}, nil)
	want := []Token{{Kind: TokenTap, Key: "0xA5"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
}

func TestSplitBuffer(t *testing.T) {
	buf := []byte{
		'a', 'b', 0x00, // M0
		0x00, // M1, empty
		0x01, 0x01, 0x04, 0x00, // M2
		'x', 'y', // trailing, unterminated
	}
	macros := SplitBuffer(buf, 16, nil)
	if len(macros) != 4 {
		t.Fatalf("got %d macros, want 4", len(macros))
	}

	if Render(macros[0].Tokens) != "ab" || macros[0].Incomplete {
		t.Errorf("M0 = %q incomplete=%v", Render(macros[0].Tokens), macros[0].Incomplete)
	}
	if len(macros[1].Raw) != 0 {
		t.Errorf("M1 raw = % x, want empty", macros[1].Raw)
	}
	if Render(macros[2].Tokens) != "{TAP(KC_A)}" {
		t.Errorf("M2 = %q", Render(macros[2].Tokens))
	}
	if !macros[3].Incomplete || Render(macros[3].Tokens) != "xy" {
		t.Errorf("M3 = %q incomplete=%v", Render(macros[3].Tokens), macros[3].Incomplete)
	}
	for i, m := range macros {
		if m.Index != i {
			t.Errorf("macro %d has index %d", i, m.Index)
		}
	}
}

func TestSplitBufferHonorsCount(t *testing.T) {
	buf := []byte{'a', 0x00, 'b', 0x00, 'c', 0x00}
	macros := SplitBuffer(buf, 2, nil)
	if len(macros) != 2 {
		t.Fatalf("got %d macros, want 2", len(macros))
	}
}
