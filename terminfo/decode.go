package terminfo

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Magic numbers of the compiled formats
const (
	MagicLegacy          = 0o432  // 16-bit numbers
	MagicExtendedNumbers = 0o1036 // 32-bit numbers (ncurses 6.1+)
)

const headerSize = 12

// reader walks a compiled entry, every read bounded by the declared counts
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) take(n int, section string) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, &DecodeError{Section: section, Offset: r.off, Err: ErrTruncated}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) uint16(section string) (int, error) {
	b, err := r.take(2, section)
	if err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint16(b)), nil
}

// int16s reads n little-endian values, sign-extended so 0xFFFF becomes -1
func (r *reader) int16s(n int, section string) ([]int, error) {
	b, err := r.take(2*n, section)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(b[2*i:])))
	}
	return out, nil
}

// offsets reads n string offsets; 0xFFFF (absent) and 0xFFFE (cancelled) become -1
func (r *reader) offsets(n int, section string) ([]int, error) {
	b, err := r.take(2*n, section)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		v := int(binary.LittleEndian.Uint16(b[2*i:]))
		if v >= 0xFFFE {
			v = -1
		}
		out[i] = v
	}
	return out, nil
}

func (r *reader) int32s(n int, section string) ([]int, error) {
	b, err := r.take(4*n, section)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(int32(binary.LittleEndian.Uint32(b[4*i:])))
	}
	return out, nil
}

func (r *reader) numbers(n, width int, section string) ([]int, error) {
	if width == 4 {
		return r.int32s(n, section)
	}
	return r.int16s(n, section)
}

func (r *reader) flags(n int, section string) ([]bool, error) {
	b, err := r.take(n, section)
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i, v := range b {
		out[i] = v != 0
	}
	return out, nil
}

// legacyPad reports whether a pad byte separates the booleans from the numbers.
// The header is 12 bytes, so the numbers start even exactly when names+bools is even.
func legacyPad(namesSize, boolCount int) bool {
	return (namesSize+boolCount)%2 == 1
}

// extendedPad reports whether a pad byte precedes a 2-byte aligned extended field.
// Unlike the legacy rule this is tested against the absolute read offset.
func extendedPad(offset int) bool {
	return offset%2 == 1
}

// Decode parses a compiled terminfo entry.
// Structural errors in the legacy part fail with a *DecodeError; a broken
// extended section only degrades the table to its legacy capabilities.
func Decode(data []byte) (*Table, error) {
	r := &reader{buf: data}

	magic, err := r.uint16(SectionHeader)
	if err != nil {
		return nil, err
	}

	width := 2
	switch magic {
	case MagicLegacy:
	case MagicExtendedNumbers:
		width = 4
	default:
		return nil, &DecodeError{Section: SectionHeader, Offset: 0, Err: ErrBadMagic}
	}

	var counts [5]int
	for i := range counts {
		if counts[i], err = r.uint16(SectionHeader); err != nil {
			return nil, err
		}
	}
	namesSize, boolCount, numCount, strCount, tableSize := counts[0], counts[1], counts[2], counts[3], counts[4]

	t := &Table{numberWidth: width}

	nameField, err := r.take(namesSize, SectionNames)
	if err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(nameField, 0); i >= 0 {
		nameField = nameField[:i]
	}
	t.names, t.description = splitNames(string(nameField))

	if t.bools, err = r.flags(boolCount, SectionBools); err != nil {
		return nil, err
	}

	if legacyPad(namesSize, boolCount) {
		if _, err := r.take(1, SectionBools); err != nil {
			return nil, err
		}
	}

	if t.numbers, err = r.numbers(numCount, width, SectionNumbers); err != nil {
		return nil, err
	}

	if t.offsets, err = r.offsets(strCount, SectionStrings); err != nil {
		return nil, err
	}

	table, err := r.take(tableSize, SectionTable)
	if err != nil {
		return nil, err
	}
	t.stringTable = bytes.Clone(table)
	t.warnings = checkOffsets(t.offsets, len(t.stringTable))

	t.ext, t.extStatus, t.extErr = decodeExtended(r, width)

	return t, nil
}

// checkOffsets records every present offset that cannot index the table
func checkOffsets(offsets []int, size int) []CorruptionWarning {
	var warnings []CorruptionWarning
	for i, off := range offsets {
		if off >= 0 && off >= size {
			warnings = append(warnings, CorruptionWarning{
				Capability: StringCapability(i),
				Offset:     off,
				TableSize:  size,
			})
		}
	}
	return warnings
}

// splitNames separates "xterm|xterm-256color|description" into names and description.
// A single field is a name, not a description.
func splitNames(field string) ([]string, string) {
	if field == "" {
		return nil, ""
	}
	parts := strings.Split(field, "|")
	if len(parts) == 1 {
		return parts, ""
	}
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// cstring returns the NUL-terminated run at off, or the rest of the table when unterminated
func cstring(table []byte, off int) []byte {
	run := table[off:]
	if i := bytes.IndexByte(run, 0); i >= 0 {
		run = run[:i]
	}
	return run
}
