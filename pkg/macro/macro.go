// Package macro decodes the on-device QMK macro buffer: null-terminated byte
// streams mixing literal characters with 0x01-prefixed tap/down/up/delay
// escape sequences.
package macro

import (
	"fmt"
	"strconv"
	"strings"
)

// Escape sequence bytes, per QMK's send_string format.
const (
	prefix    = 0x01
	tapCode   = 0x01
	downCode  = 0x02
	upCode    = 0x03
	delayCode = 0x04
)

// TokenKind discriminates decoded macro tokens.
type TokenKind uint8

const (
	TokenText  TokenKind = iota // literal characters
	TokenTap                    // tap a key
	TokenDown                   // press a key
	TokenUp                     // release a key
	TokenDelay                  // pause in milliseconds
	TokenRaw                    // bytes with no decoding, rendered as hex
)

// Token is one decoded element of a macro.
type Token struct {
	Kind    TokenKind
	Text    string // TokenText
	Key     string // TokenTap, TokenDown, TokenUp
	DelayMS int    // TokenDelay
	Raw     []byte // TokenRaw
}

func (t Token) String() string {
	switch t.Kind {
	case TokenText:
		return t.Text
	case TokenTap:
		return fmt.Sprintf("{TAP(%s)}", t.Key)
	case TokenDown:
		return fmt.Sprintf("{DOWN(%s)}", t.Key)
	case TokenUp:
		return fmt.Sprintf("{UP(%s)}", t.Key)
	case TokenDelay:
		return fmt.Sprintf("{DELAY(%dms)}", t.DelayMS)
	default:
		var b strings.Builder
		b.WriteString("{0x")
		for _, raw := range t.Raw {
			fmt.Fprintf(&b, "%02X", raw)
		}
		b.WriteString("}")
		return b.String()
	}
}

// Layout maps layout-dependent HID codes (0x04-0x1F appearing unescaped in a
// macro) to the character they produce. Which character that is depends on
// the host keyboard layout, so the table is caller-overridable.
type Layout map[byte]rune

// DefaultLayout is the Czech QWERTZ unshifted mapping observed on the
// reference hardware. Pass a different Layout to Parse to override it.
var DefaultLayout = Layout{
	0x04: 'a', 0x05: 'b', 0x06: 'c', 0x07: 'd',
	0x08: 'e', 0x09: 'f', 0x0A: 'g', 0x0B: 'h',
	0x0C: 'i', 0x0D: 'j', 0x0E: 'k', 0x0F: 'l',
	0x10: 'm', 0x11: 'n', 0x12: 'o', 0x13: 'p',
	0x14: 'q', 0x15: 'r', 0x16: 's', 0x17: 't',
	0x18: 'u', 0x19: 'v', 0x1A: 'w', 0x1B: 'x',
	0x1C: '.', 0x1D: 'y',
	0x1E: '1', 0x1F: '2',
}

// hidNames is the restricted HID keycode name table used inside escape
// sequences (escaped keycodes are single bytes, not full 16-bit codes).
var hidNames = map[byte]string{
	0x00: "KC_NO", 0x01: "KC_TRNS",
	0x04: "KC_A", 0x05: "KC_B", 0x06: "KC_C", 0x07: "KC_D",
	0x08: "KC_E", 0x09: "KC_F", 0x0A: "KC_G", 0x0B: "KC_H",
	0x0C: "KC_I", 0x0D: "KC_J", 0x0E: "KC_K", 0x0F: "KC_L",
	0x10: "KC_M", 0x11: "KC_N", 0x12: "KC_O", 0x13: "KC_P",
	0x14: "KC_Q", 0x15: "KC_R", 0x16: "KC_S", 0x17: "KC_T",
	0x18: "KC_U", 0x19: "KC_V", 0x1A: "KC_W", 0x1B: "KC_X",
	0x1C: "KC_Y", 0x1D: "KC_Z",
	0x1E: "KC_1", 0x1F: "KC_2", 0x20: "KC_3", 0x21: "KC_4",
	0x22: "KC_5", 0x23: "KC_6", 0x24: "KC_7", 0x25: "KC_8",
	0x26: "KC_9", 0x27: "KC_0",
	0x28: "KC_ENT", 0x29: "KC_ESC", 0x2A: "KC_BSPC", 0x2B: "KC_TAB",
	0x2C: "KC_SPC", 0x2D: "KC_MINS", 0x2E: "KC_EQL", 0x2F: "KC_LBRC",
	0x30: "KC_RBRC", 0x31: "KC_BSLS", 0x33: "KC_SCLN", 0x34: "KC_QUOT",
	0x35: "KC_GRV", 0x36: "KC_COMM", 0x37: "KC_DOT", 0x38: "KC_SLSH",
	0x39: "KC_CAPS",
	0x3A: "KC_F1", 0x3B: "KC_F2", 0x3C: "KC_F3", 0x3D: "KC_F4",
	0x3E: "KC_F5", 0x3F: "KC_F6", 0x40: "KC_F7", 0x41: "KC_F8",
	0x42: "KC_F9", 0x43: "KC_F10", 0x44: "KC_F11", 0x45: "KC_F12",
	0x4F: "KC_RGHT", 0x50: "KC_LEFT", 0x51: "KC_DOWN", 0x52: "KC_UP",
	0x68: "KC_F13", 0x69: "KC_F14", 0x6A: "KC_F15", 0x6B: "KC_F16",
	0x6C: "KC_F17", 0x6D: "KC_F18", 0x6E: "KC_F19", 0x6F: "KC_F20",
	0x70: "KC_F21", 0x71: "KC_F22", 0x72: "KC_F23", 0x73: "KC_F24",
	0xE0: "KC_LCTL", 0xE1: "KC_LSFT", 0xE2: "KC_LALT", 0xE3: "KC_LGUI",
	0xE4: "KC_RCTL", 0xE5: "KC_RSFT", 0xE6: "KC_RALT", 0xE7: "KC_RGUI",
}

func hidName(code byte) string {
	if name, ok := hidNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", code)
}

// Parse decodes one macro's bytes (without the trailing NUL) into tokens.
// A nil layout uses DefaultLayout. Unrecognized bytes decode to TokenRaw;
// parsing never fails.
func Parse(data []byte, layout Layout) []Token {
	if layout == nil {
		layout = DefaultLayout
	}

	var tokens []Token
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenText, Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(data); {
		b := data[i]

		switch {
		case b == prefix && i+1 < len(data):
			code := data[i+1]
			switch {
			case code == tapCode && i+2 < len(data):
				flush()
				tokens = append(tokens, Token{Kind: TokenTap, Key: hidName(data[i+2])})
				i += 3
			case code == downCode && i+2 < len(data):
				flush()
				tokens = append(tokens, Token{Kind: TokenDown, Key: hidName(data[i+2])})
				i += 3
			case code == upCode && i+2 < len(data):
				flush()
				tokens = append(tokens, Token{Kind: TokenUp, Key: hidName(data[i+2])})
				i += 3
			case code == delayCode:
				flush()
				i += 2
				start := i
				for i < len(data) && data[i] != '|' {
					i++
				}
				ms, _ := strconv.Atoi(string(data[start:i]))
				if i < len(data) {
					i++ // consume the '|'
				}
				tokens = append(tokens, Token{Kind: TokenDelay, DelayMS: ms})
			default:
				flush()
				tokens = append(tokens, Token{Kind: TokenRaw, Raw: []byte{b, code}})
				i += 2
			}

		case b >= 0x20 && b <= 0x7E:
			text.WriteByte(b)
			i++

		default:
			if r, ok := layout[b]; ok {
				text.WriteRune(r)
				i++
				continue
			}
			flush()
			tokens = append(tokens, Token{Kind: TokenRaw, Raw: []byte{b}})
			i++
		}
	}
	flush()
	return tokens
}

// Render joins tokens back into the human-readable form.
func Render(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}

// Macro is one slot of the device macro buffer.
type Macro struct {
	Index      int
	Raw        []byte
	Tokens     []Token
	Incomplete bool // trailing macro with no NUL terminator
}

// SplitBuffer cuts the raw macro buffer at NUL terminators into at most count
// macros. Empty slots are preserved (so indices line up with macro keycodes).
// A trailing run of bytes with no terminator is still returned, flagged
// incomplete.
func SplitBuffer(buf []byte, count int, layout Layout) []Macro {
	var macros []Macro
	var current []byte

	for _, b := range buf {
		if len(macros) >= count {
			break
		}
		if b != 0x00 {
			current = append(current, b)
			continue
		}
		macros = append(macros, Macro{
			Index:  len(macros),
			Raw:    current,
			Tokens: Parse(current, layout),
		})
		current = nil
	}

	if len(current) > 0 && len(macros) < count {
		macros = append(macros, Macro{
			Index:      len(macros),
			Raw:        current,
			Tokens:     Parse(current, layout),
			Incomplete: true,
		})
	}
	return macros
}
