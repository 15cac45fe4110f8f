package terminfo

import "strconv"

// BoolCapability indexes the boolean section of a compiled entry
type BoolCapability int

// NumberCapability indexes the numeric section of a compiled entry
type NumberCapability int

// StringCapability indexes the string-offset section of a compiled entry
type StringCapability int

// Enumeration sizes, including the ncurses termcap tails
const (
	BoolCount   = len(boolNames)
	NumberCount = len(numberNames)
	StringCount = len(stringNames)
)

func (c BoolCapability) String() string {
	if c < 0 || int(c) >= BoolCount {
		return "bool(" + strconv.Itoa(int(c)) + ")"
	}
	return boolNames[c]
}

func (c NumberCapability) String() string {
	if c < 0 || int(c) >= NumberCount {
		return "number(" + strconv.Itoa(int(c)) + ")"
	}
	return numberNames[c]
}

func (c StringCapability) String() string {
	if c < 0 || int(c) >= StringCount {
		return "string(" + strconv.Itoa(int(c)) + ")"
	}
	return stringNames[c]
}

var (
	boolByName   = indexNames[BoolCapability](boolNames[:])
	numberByName = indexNames[NumberCapability](numberNames[:])
	stringByName = indexNames[StringCapability](stringNames[:])
)

func indexNames[T ~int](names []string) map[string]T {
	m := make(map[string]T, len(names))
	for i, n := range names {
		m[n] = T(i)
	}
	return m
}

// LookupBool resolves a long capability name such as "auto_right_margin"
func LookupBool(name string) (BoolCapability, bool) {
	c, ok := boolByName[name]
	return c, ok
}

// LookupNumber resolves a long capability name such as "max_colors"
func LookupNumber(name string) (NumberCapability, bool) {
	c, ok := numberByName[name]
	return c, ok
}

// LookupString resolves a long capability name such as "cursor_address"
func LookupString(name string) (StringCapability, bool) {
	c, ok := stringByName[name]
	return c, ok
}
