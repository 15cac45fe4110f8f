package terminfo

import (
	"errors"
	"fmt"

	tcellinfo "github.com/gdamore/tcell/v2/terminfo"
	_ "github.com/gdamore/tcell/v2/terminfo/base"
)

// Builtin returns a table compiled from the descriptions linked into the binary
// (ansi, tmux, vt100, vt102, vt220 and the xterm family). It is the fallback
// for hosts that ship no terminfo database.
func Builtin(name string) (*Table, error) {
	ti, err := tcellinfo.LookupTerminfo(name)
	if err != nil {
		if errors.Is(err, tcellinfo.ErrTermNotFound) {
			return nil, &LookupError{Name: name, Searched: []string{"builtin"}, Err: ErrNotFound}
		}
		return nil, err
	}

	data, err := builtinEntry(name, ti).Compile()
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	return Decode(data)
}

func builtinEntry(name string, ti *tcellinfo.Terminfo) *Entry {
	e := &Entry{
		Names:           append([]string{ti.Name}, ti.Aliases...),
		Description:     "builtin " + name,
		Bools:           make(map[BoolCapability]bool),
		Numbers:         make(map[NumberCapability]int),
		Strings:         make(map[StringCapability]string),
		ExtendedBools:   make(map[string]bool),
		ExtendedStrings: make(map[string]string),
	}

	if ti.AutoMargin {
		e.Bools[AutoRightMargin] = true
	}
	for c, v := range map[NumberCapability]int{
		Columns:   ti.Columns,
		Lines:     ti.Lines,
		MaxColors: ti.Colors,
	} {
		if v > 0 {
			e.Numbers[c] = v
		}
	}

	for c, s := range map[StringCapability]string{
		ClearScreen:         ti.Clear,
		EnterCaMode:         ti.EnterCA,
		ExitCaMode:          ti.ExitCA,
		CursorNormal:        ti.ShowCursor,
		CursorInvisible:     ti.HideCursor,
		ExitAttributeMode:   ti.AttrOff,
		EnterUnderlineMode:  ti.Underline,
		EnterBoldMode:       ti.Bold,
		EnterBlinkMode:      ti.Blink,
		EnterReverseMode:    ti.Reverse,
		EnterDimMode:        ti.Dim,
		EnterItalicsMode:    ti.Italic,
		KeypadXmit:          ti.EnterKeypad,
		KeypadLocal:         ti.ExitKeypad,
		SetAForeground:      ti.SetFg,
		SetABackground:      ti.SetBg,
		OrigPair:            ti.ResetFgBg,
		CursorAddress:       ti.SetCursor,
		PadChar:             ti.PadChar,
		KeyMouse:            ti.Mouse,
		AcsChars:            ti.AltChars,
		EnterAltCharsetMode: ti.EnterAcs,
		ExitAltCharsetMode:  ti.ExitAcs,
		EnaAcs:              ti.EnableAcs,
		InsertCharacter:     ti.InsertChar,
		EnterAmMode:         ti.EnableAutoMargin,
		ExitAmMode:          ti.DisableAutoMargin,
	} {
		if s != "" {
			e.Strings[c] = s
		}
	}

	for n, s := range map[string]string{
		"smxx":    ti.StrikeThrough,
		"setrgbf": ti.SetFgRGB,
		"setrgbb": ti.SetBgRGB,
	} {
		if s != "" {
			e.ExtendedStrings[n] = s
		}
	}
	if ti.TrueColor {
		e.ExtendedBools["RGB"] = true
	}
	if ti.XTermLike {
		e.ExtendedBools["XT"] = true
	}
	return e
}
