package terminfo

import "strconv"

// stack is the evaluator's integer stack; popping an empty stack yields 0
type stack []int

func (s *stack) push(v int) { *s = append(*s, v) }

func (s *stack) pop() int {
	n := len(*s)
	if n == 0 {
		return 0
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v
}

func (s *stack) pushBool(b bool) {
	if b {
		s.push(1)
	} else {
		s.push(0)
	}
}

// Expand evaluates a parameterized capability string against params in one
// left-to-right pass. %i increments params[0] and params[1] in place.
//
// Operators: %% %i %p1-%p9 %d %{n} %< %- and the %? %t %e %; conditional.
// Any other escape is consumed with no output and no stack effect. Expand
// never fails: a missing parameter reads as 0 and so does an empty stack.
func Expand(tmpl []byte, params []int) []byte {
	out := make([]byte, 0, len(tmpl)+8)
	var st stack

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(tmpl) {
			break
		}

		switch tmpl[i] {
		case '%':
			out = append(out, '%')
		case 'i':
			if len(params) > 0 {
				params[0]++
			}
			if len(params) > 1 {
				params[1]++
			}
		case 'p':
			i++
			if i < len(tmpl) {
				st.push(param(params, int(tmpl[i])-'1'))
			}
		case 'd':
			out = strconv.AppendInt(out, int64(st.pop()), 10)
		case '{':
			start := i + 1
			for i < len(tmpl) && tmpl[i] != '}' {
				i++
			}
			st.push(leadingInt(tmpl[start:min(i, len(tmpl))]))
		case '<':
			a, b := st.pop(), st.pop()
			st.pushBool(b < a)
		case '-':
			a, b := st.pop(), st.pop()
			st.push(b - a)
		case '?', ';':
		case 't':
			if st.pop() == 0 {
				i = skipBranch(tmpl, i+1, true)
			}
		case 'e':
			// reached only after a true branch ran
			i = skipBranch(tmpl, i+1, false)
		}
	}
	return out
}

// ExpandString is Expand for string templates and variadic parameters
func ExpandString(tmpl string, params ...int) string {
	return string(Expand([]byte(tmpl), params))
}

// skipBranch scans from i without executing and returns the index of the
// matching %e (when toElse) or %; at nesting level zero.
func skipBranch(tmpl []byte, i int, toElse bool) int {
	level := 0
	for ; i < len(tmpl); i++ {
		if tmpl[i] != '%' {
			continue
		}
		i++
		if i >= len(tmpl) {
			break
		}
		switch tmpl[i] {
		case '?':
			level++
		case ';':
			if level == 0 {
				return i
			}
			level--
		case 'e':
			if toElse && level == 0 {
				return i
			}
		}
	}
	return len(tmpl)
}

func param(params []int, idx int) int {
	if idx < 0 || idx >= len(params) {
		return 0
	}
	return params[idx]
}

// leadingInt parses an optional sign and the digits that follow it, ignoring the rest
func leadingInt(b []byte) int {
	neg := false
	if len(b) > 0 && (b[0] == '-' || b[0] == '+') {
		neg = b[0] == '-'
		b = b[1:]
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		return -n
	}
	return n
}

// Expand evaluates a string capability of the table; ok is false when it is absent
func (t *Table) Expand(c StringCapability, params ...int) ([]byte, bool) {
	tmpl, ok := t.Sequence(c)
	if !ok {
		return nil, false
	}
	return Expand(tmpl, params), true
}
