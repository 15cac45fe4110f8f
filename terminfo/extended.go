package terminfo

import "fmt"

// ExtendedStatus tells how the section following the legacy string table was handled
type ExtendedStatus uint8

const (
	ExtendedAbsent ExtendedStatus = iota
	ExtendedDecoded
	ExtendedMalformed
)

func (s ExtendedStatus) String() string {
	switch s {
	case ExtendedDecoded:
		return "decoded"
	case ExtendedMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// Extended holds the user-defined capabilities of the ncurses extended section.
// Values are positional like the legacy section; names come from a trailing name table.
type Extended struct {
	Bools         []bool
	Numbers       []int
	StringOffsets []int
	NameOffsets   []int
	StringTable   []byte
	TableEntries  int

	boolNames   []string
	numberNames []string
	stringNames []string
}

// decodeExtended reads the optional extended section; any failure is reported
// through the status and never invalidates the legacy table.
func decodeExtended(r *reader, width int) (*Extended, ExtendedStatus, error) {
	if r.remaining() == 0 {
		return nil, ExtendedAbsent, nil
	}
	if extendedPad(r.off) {
		r.off++
		if r.remaining() == 0 {
			return nil, ExtendedAbsent, nil
		}
	}

	ext, err := readExtended(r, width)
	if err != nil {
		return nil, ExtendedMalformed, fmt.Errorf("%w: %w", ErrMalformedExtended, err)
	}
	return ext, ExtendedDecoded, nil
}

func readExtended(r *reader, width int) (*Extended, error) {
	var counts [5]int
	var err error
	for i := range counts {
		if counts[i], err = r.uint16(SectionExtended); err != nil {
			return nil, err
		}
	}
	boolCount, numCount, strCount, entries, tableSize := counts[0], counts[1], counts[2], counts[3], counts[4]

	ext := &Extended{TableEntries: entries}

	if ext.Bools, err = r.flags(boolCount, SectionExtended); err != nil {
		return nil, err
	}
	if extendedPad(r.off) {
		if _, err := r.take(1, SectionExtended); err != nil {
			return nil, err
		}
	}
	if ext.Numbers, err = r.numbers(numCount, width, SectionExtended); err != nil {
		return nil, err
	}
	if ext.StringOffsets, err = r.offsets(strCount, SectionExtended); err != nil {
		return nil, err
	}
	if ext.NameOffsets, err = r.offsets(boolCount+numCount+strCount, SectionExtended); err != nil {
		return nil, err
	}
	table, err := r.take(tableSize, SectionExtended)
	if err != nil {
		return nil, err
	}
	ext.StringTable = append([]byte(nil), table...)

	if err := ext.resolveNames(); err != nil {
		return nil, err
	}
	return ext, nil
}

// resolveNames reads the name table, which starts right after the last value string
func (e *Extended) resolveNames() error {
	base := 0
	for _, off := range e.StringOffsets {
		if off < 0 {
			continue
		}
		if off >= len(e.StringTable) {
			return &DecodeError{Section: SectionExtended, Offset: off, Err: ErrTruncated}
		}
		if end := off + len(cstring(e.StringTable, off)) + 1; end > base {
			base = end
		}
	}

	names := make([]string, len(e.NameOffsets))
	for i, off := range e.NameOffsets {
		at := base + off
		if off < 0 || at >= len(e.StringTable) {
			return &DecodeError{Section: SectionExtended, Offset: at, Err: ErrTruncated}
		}
		names[i] = string(cstring(e.StringTable, at))
	}

	nb, nn := len(e.Bools), len(e.Numbers)
	e.boolNames = names[:nb]
	e.numberNames = names[nb : nb+nn]
	e.stringNames = names[nb+nn:]
	return nil
}

// Names returns the extended capability names per section
func (e *Extended) Names() (bools, numbers, strs []string) {
	return e.boolNames, e.numberNames, e.stringNames
}

func (e *Extended) boolValue(name string) (bool, bool) {
	for i, n := range e.boolNames {
		if n == name {
			return e.Bools[i], true
		}
	}
	return false, false
}

func (e *Extended) numberValue(name string) (int, bool) {
	for i, n := range e.numberNames {
		if n == name {
			v := e.Numbers[i]
			return v, v >= 0
		}
	}
	return 0, false
}

func (e *Extended) stringValue(name string) ([]byte, bool) {
	for i, n := range e.stringNames {
		if n == name {
			off := e.StringOffsets[i]
			if off < 0 || off >= len(e.StringTable) {
				return nil, false
			}
			return cstring(e.StringTable, off), true
		}
	}
	return nil, false
}
