package terminal

import "github.com/lixenwraith/tinfo/terminfo"

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter (Ctrl+A = 0x01, Ctrl+Z = 0x1A), minus the ones with their own key
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier flags, laid out like xterm's modifier parameter minus one
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

var keyNames = map[Key]string{
	KeyRune:      "rune",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",

	KeyCtrlA:            "ctrl_a",
	KeyCtrlB:            "ctrl_b",
	KeyCtrlC:            "ctrl_c",
	KeyCtrlD:            "ctrl_d",
	KeyCtrlE:            "ctrl_e",
	KeyCtrlF:            "ctrl_f",
	KeyCtrlG:            "ctrl_g",
	KeyCtrlK:            "ctrl_k",
	KeyCtrlL:            "ctrl_l",
	KeyCtrlN:            "ctrl_n",
	KeyCtrlO:            "ctrl_o",
	KeyCtrlP:            "ctrl_p",
	KeyCtrlQ:            "ctrl_q",
	KeyCtrlR:            "ctrl_r",
	KeyCtrlS:            "ctrl_s",
	KeyCtrlT:            "ctrl_t",
	KeyCtrlU:            "ctrl_u",
	KeyCtrlV:            "ctrl_v",
	KeyCtrlW:            "ctrl_w",
	KeyCtrlX:            "ctrl_x",
	KeyCtrlY:            "ctrl_y",
	KeyCtrlZ:            "ctrl_z",
	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "none"
}

func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	s := ""
	for _, p := range []struct {
		mod  Modifier
		name string
	}{{ModCtrl, "ctrl+"}, {ModAlt, "alt+"}, {ModShift, "shift+"}} {
		if m&p.mod != 0 {
			s += p.name
		}
	}
	return s
}

// controlKeys maps C0 bytes; 0x08, 0x09, 0x0a, 0x0d and 0x1b have dedicated keys
var controlKeys = [0x20]Key{
	0x00: KeyCtrlSpace,
	0x01: KeyCtrlA, 0x02: KeyCtrlB, 0x03: KeyCtrlC, 0x04: KeyCtrlD,
	0x05: KeyCtrlE, 0x06: KeyCtrlF, 0x07: KeyCtrlG, 0x08: KeyBackspace,
	0x09: KeyTab, 0x0a: KeyEnter, 0x0b: KeyCtrlK, 0x0c: KeyCtrlL,
	0x0d: KeyEnter, 0x0e: KeyCtrlN, 0x0f: KeyCtrlO, 0x10: KeyCtrlP,
	0x11: KeyCtrlQ, 0x12: KeyCtrlR, 0x13: KeyCtrlS, 0x14: KeyCtrlT,
	0x15: KeyCtrlU, 0x16: KeyCtrlV, 0x17: KeyCtrlW, 0x18: KeyCtrlX,
	0x19: KeyCtrlY, 0x1a: KeyCtrlZ, 0x1b: KeyEscape, 0x1c: KeyCtrlBackslash,
	0x1d: KeyCtrlBracketRight, 0x1e: KeyCtrlCaret, 0x1f: KeyCtrlUnderscore,
}

// letterKeys maps the final byte of CSI and SS3 key sequences
var letterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'Z': KeyBacktab,
}

// tildeKeys maps the first parameter of CSI n ~ sequences
var tildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// linux console function keys: ESC [ [ A .. E
var consoleKeys = map[byte]Key{'A': KeyF1, 'B': KeyF2, 'C': KeyF3, 'D': KeyF4, 'E': KeyF5}

// decodeCSIKey interprets the parameter bytes and final byte of a CSI sequence.
// The second numeric parameter, when present, is the xterm modifier code.
func decodeCSIKey(params []byte, final byte) (Key, Modifier, bool) {
	if len(params) == 1 && params[0] == '[' {
		k, ok := consoleKeys[final]
		return k, ModNone, ok
	}

	nums, ok := splitParams(params)
	if !ok {
		return KeyNone, ModNone, false
	}
	var mod Modifier
	if len(nums) > 1 && nums[1] > 1 {
		mod = Modifier(nums[1] - 1)
	}

	if final == '~' {
		if len(nums) == 0 {
			return KeyNone, ModNone, false
		}
		k, ok := tildeKeys[nums[0]]
		return k, mod, ok
	}

	k, ok := letterKeys[final]
	if !ok {
		return KeyNone, ModNone, false
	}
	if k == KeyBacktab {
		mod |= ModShift
	}
	return k, mod, true
}

// splitParams parses "1;5" style parameter lists; empty fields read as 0
func splitParams(params []byte) ([]int, bool) {
	if len(params) == 0 {
		return nil, true
	}
	nums := []int{0}
	for _, b := range params {
		switch {
		case b == ';':
			nums = append(nums, 0)
		case b >= '0' && b <= '9':
			n := &nums[len(nums)-1]
			*n = *n*10 + int(b-'0')
			if *n > 9999 {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return nums, true
}

// keyCapabilities binds terminfo key_* strings to keys. key_mouse is absent:
// mouse reports are framed separately.
var keyCapabilities = []struct {
	cap terminfo.StringCapability
	key Key
}{
	{terminfo.KeyUp, KeyUp},
	{terminfo.KeyDown, KeyDown},
	{terminfo.KeyLeft, KeyLeft},
	{terminfo.KeyRight, KeyRight},
	{terminfo.KeyHome, KeyHome},
	{terminfo.KeyEnd, KeyEnd},
	{terminfo.KeyPpage, KeyPageUp},
	{terminfo.KeyNpage, KeyPageDown},
	{terminfo.KeyIc, KeyInsert},
	{terminfo.KeyDc, KeyDelete},
	{terminfo.KeyBtab, KeyBacktab},
	{terminfo.KeyF1, KeyF1},
	{terminfo.KeyF2, KeyF2},
	{terminfo.KeyF3, KeyF3},
	{terminfo.KeyF4, KeyF4},
	{terminfo.KeyF5, KeyF5},
	{terminfo.KeyF6, KeyF6},
	{terminfo.KeyF7, KeyF7},
	{terminfo.KeyF8, KeyF8},
	{terminfo.KeyF9, KeyF9},
	{terminfo.KeyF10, KeyF10},
	{terminfo.KeyF11, KeyF11},
	{terminfo.KeyF12, KeyF12},
}

// keySeq is one escape sequence the terminal description declares for a key
type keySeq struct {
	seq []byte
	key Key
}

// tableKeys collects the escape-prefixed key sequences of t
func tableKeys(t *terminfo.Table) []keySeq {
	var keys []keySeq
	for _, kc := range keyCapabilities {
		seq, ok := t.Sequence(kc.cap)
		if !ok || len(seq) < 2 || seq[0] != 0x1b {
			continue
		}
		keys = append(keys, keySeq{seq: seq, key: kc.key})
	}
	return keys
}
