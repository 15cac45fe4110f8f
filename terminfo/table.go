package terminfo

// Table is a decoded terminal description. It is immutable once built.
type Table struct {
	names       []string
	description string
	numberWidth int

	bools       []bool
	numbers     []int
	offsets     []int
	stringTable []byte
	warnings    []CorruptionWarning

	ext       *Extended
	extStatus ExtendedStatus
	extErr    error
}

// Name returns the primary terminal name
func (t *Table) Name() string {
	if len(t.names) == 0 {
		return ""
	}
	return t.names[0]
}

// Aliases returns the names following the primary one
func (t *Table) Aliases() []string {
	if len(t.names) < 2 {
		return nil
	}
	return append([]string(nil), t.names[1:]...)
}

// Description returns the trailing descriptive field of the name section
func (t *Table) Description() string { return t.description }

// NumberWidth is 2 for the legacy format and 4 for the extended-number format
func (t *Table) NumberWidth() int { return t.numberWidth }

// Bool reports a boolean capability; indexes past the decoded section read false
func (t *Table) Bool(c BoolCapability) bool {
	if c < 0 || int(c) >= len(t.bools) {
		return false
	}
	return t.bools[c]
}

// Number returns a numeric capability; ok is false when absent or cancelled
func (t *Table) Number(c NumberCapability) (int, bool) {
	if c < 0 || int(c) >= len(t.numbers) {
		return 0, false
	}
	v := t.numbers[c]
	if v < 0 {
		return 0, false
	}
	return v, true
}

// Sequence returns the bytes of a string capability up to its terminating NUL.
// Absent capabilities and corrupt offsets both report ok == false.
func (t *Table) Sequence(c StringCapability) ([]byte, bool) {
	if c < 0 || int(c) >= len(t.offsets) {
		return nil, false
	}
	off := t.offsets[c]
	if off < 0 || off >= len(t.stringTable) {
		return nil, false
	}
	return cstring(t.stringTable, off), true
}

// Has reports whether a string capability is present and readable
func (t *Table) Has(c StringCapability) bool {
	_, ok := t.Sequence(c)
	return ok
}

// Counts returns the number of decoded entries per legacy section
func (t *Table) Counts() (bools, numbers, strs int) {
	return len(t.bools), len(t.numbers), len(t.offsets)
}

// Warnings returns the corrupt string offsets found while decoding
func (t *Table) Warnings() []CorruptionWarning {
	return append([]CorruptionWarning(nil), t.warnings...)
}

// ExtendedStatus reports whether an extended section was absent, decoded or malformed
func (t *Table) ExtendedStatus() ExtendedStatus { return t.extStatus }

// ExtendedErr is the cause of an ExtendedMalformed status
func (t *Table) ExtendedErr() error { return t.extErr }

// Extended returns the decoded extended section, nil unless ExtendedDecoded
func (t *Table) Extended() *Extended { return t.ext }

// ExtendedBool looks up a user-defined boolean such as "RGB" or "Tc".
// ok is false when the name is not defined.
func (t *Table) ExtendedBool(name string) (value, ok bool) {
	if t.ext == nil {
		return false, false
	}
	return t.ext.boolValue(name)
}

// ExtendedNumber looks up a user-defined number
func (t *Table) ExtendedNumber(name string) (int, bool) {
	if t.ext == nil {
		return 0, false
	}
	return t.ext.numberValue(name)
}

// ExtendedString looks up a user-defined string such as "setrgbf"
func (t *Table) ExtendedString(name string) ([]byte, bool) {
	if t.ext == nil {
		return nil, false
	}
	return t.ext.stringValue(name)
}
