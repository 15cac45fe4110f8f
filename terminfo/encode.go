package terminfo

import (
	"encoding/binary"
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	errEntryTooLarge = errors.New("terminfo: entry exceeds compiled format limits")
	errEntryUnnamed  = errors.New("terminfo: entry has no name")
)

const maxOffset = 0x7FFF

// Entry is an uncompiled terminal description
type Entry struct {
	Names       []string
	Description string

	Bools   map[BoolCapability]bool
	Numbers map[NumberCapability]int
	Strings map[StringCapability]string

	ExtendedBools   map[string]bool
	ExtendedNumbers map[string]int
	ExtendedStrings map[string]string
}

// Compile writes the entry in the compiled terminfo format Decode reads.
// Numbers above 32767 switch the output to the 32-bit number format.
func (e *Entry) Compile() ([]byte, error) {
	if len(e.Names) == 0 {
		return nil, errEntryUnnamed
	}

	width := 2
	for _, v := range e.Numbers {
		if v > maxOffset {
			width = 4
		}
	}
	for _, v := range e.ExtendedNumbers {
		if v > maxOffset {
			width = 4
		}
	}

	nameField := strings.Join(e.Names, "|")
	if e.Description != "" {
		nameField += "|" + e.Description
	}
	namesSize := len(nameField) + 1

	boolCount := 0
	for c, v := range e.Bools {
		if v && int(c)+1 > boolCount {
			boolCount = int(c) + 1
		}
	}
	numCount := 0
	for c := range e.Numbers {
		numCount = max(numCount, int(c)+1)
	}
	strCount := 0
	for c := range e.Strings {
		strCount = max(strCount, int(c)+1)
	}

	var table []byte
	offsets := make([]int, strCount)
	for i := range offsets {
		s, ok := e.Strings[StringCapability(i)]
		if !ok {
			offsets[i] = -1
			continue
		}
		offsets[i] = len(table)
		table = append(append(table, s...), 0)
	}
	if len(table) > maxOffset || namesSize > maxOffset {
		return nil, errEntryTooLarge
	}

	magic := MagicLegacy
	if width == 4 {
		magic = MagicExtendedNumbers
	}

	buf := make([]byte, 0, headerSize+namesSize+boolCount+1+width*numCount+2*strCount+len(table))
	for _, v := range []int{magic, namesSize, boolCount, numCount, strCount, len(table)} {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	}
	buf = append(append(buf, nameField...), 0)
	for i := 0; i < boolCount; i++ {
		buf = append(buf, boolByte(e.Bools[BoolCapability(i)]))
	}
	if legacyPad(namesSize, boolCount) {
		buf = append(buf, 0)
	}
	for i := 0; i < numCount; i++ {
		v, ok := e.Numbers[NumberCapability(i)]
		if !ok {
			v = -1
		}
		buf = appendNumber(buf, v, width)
	}
	for _, off := range offsets {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(off)))
	}
	buf = append(buf, table...)

	if len(e.ExtendedBools)+len(e.ExtendedNumbers)+len(e.ExtendedStrings) > 0 {
		return e.appendExtended(buf, width)
	}
	return buf, nil
}

// appendExtended writes the extended section: value strings first, then the name table
func (e *Entry) appendExtended(buf []byte, width int) ([]byte, error) {
	boolNames := slices.Sorted(maps.Keys(e.ExtendedBools))
	numNames := slices.Sorted(maps.Keys(e.ExtendedNumbers))
	strNames := slices.Sorted(maps.Keys(e.ExtendedStrings))

	var values []byte
	strOffsets := make([]int, len(strNames))
	for i, n := range strNames {
		strOffsets[i] = len(values)
		values = append(append(values, e.ExtendedStrings[n]...), 0)
	}

	var names []byte
	all := slices.Concat(boolNames, numNames, strNames)
	nameOffsets := make([]int, len(all))
	for i, n := range all {
		nameOffsets[i] = len(names)
		names = append(append(names, n...), 0)
	}

	tableSize := len(values) + len(names)
	if tableSize > maxOffset {
		return nil, errEntryTooLarge
	}

	if extendedPad(len(buf)) {
		buf = append(buf, 0)
	}
	for _, v := range []int{len(boolNames), len(numNames), len(strNames), len(strNames) + len(all), tableSize} {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	}
	for _, n := range boolNames {
		buf = append(buf, boolByte(e.ExtendedBools[n]))
	}
	if extendedPad(len(buf)) {
		buf = append(buf, 0)
	}
	for _, n := range numNames {
		buf = appendNumber(buf, e.ExtendedNumbers[n], width)
	}
	for _, off := range strOffsets {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(off))
	}
	for _, off := range nameOffsets {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(off))
	}
	buf = append(buf, values...)
	buf = append(buf, names...)
	return buf, nil
}

func appendNumber(buf []byte, v, width int) []byte {
	if width == 4 {
		return binary.LittleEndian.AppendUint32(buf, uint32(int32(v)))
	}
	return binary.LittleEndian.AppendUint16(buf, uint16(int16(v)))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
