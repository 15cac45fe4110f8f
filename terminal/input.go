package terminal

import (
	"bytes"
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventResize
	EventError  // Read error
	EventClosed // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError

	// Mouse event fields
	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
	Button      byte // raw button byte of the report

	// Raw holds the input bytes the event was decoded from
	Raw []byte
}

// escapeTimeout is the quiet period after which a buffered ESC is a key of its own
const escapeTimeout = 50 * time.Millisecond

// decoder turns a byte stream into events, holding back incomplete sequences
type decoder struct {
	keys []keySeq
	buf  []byte
}

func newDecoder(keys []keySeq) *decoder {
	return &decoder{keys: keys, buf: make([]byte, 0, 256)}
}

// feed appends data and returns the events of every complete sequence
func (d *decoder) feed(data []byte) []Event {
	d.buf = append(d.buf, data...)
	return d.parse(false)
}

// expire resolves whatever is buffered, a lone ESC becoming KeyEscape
func (d *decoder) expire() []Event {
	return d.parse(true)
}

func (d *decoder) pending() bool { return len(d.buf) > 0 }

func (d *decoder) parse(final bool) []Event {
	var events []Event
	i := 0
	for i < len(d.buf) {
		n, ev, ok := d.next(d.buf[i:], final)
		if n == 0 {
			break
		}
		if ok {
			ev.Raw = bytes.Clone(d.buf[i : i+n])
			events = append(events, ev)
		}
		i += n
	}

	// Compact buffer
	if i >= len(d.buf) {
		d.buf = d.buf[:0]
	} else if i > 0 {
		d.buf = d.buf[:copy(d.buf, d.buf[i:])]
	}
	return events
}

// next decodes one event from the head of data. It returns 0 when data is a
// proper prefix of a sequence and final is false; ok is false for consumed
// but unrecognized sequences.
func (d *decoder) next(data []byte, final bool) (int, Event, bool) {
	b := data[0]

	switch {
	case b == 0x1b:
		n, ev, ok := d.parseEscape(data)
		if n == 0 && final {
			return 1, Event{Type: EventKey, Key: KeyEscape}, true
		}
		return n, ev, ok

	// Fast path: printable ASCII
	case b >= 0x20 && b < 0x7f:
		return 1, Event{Type: EventKey, Key: KeyRune, Rune: rune(b)}, true

	case b < 0x20:
		return 1, Event{Type: EventKey, Key: controlKeys[b]}, true

	case b == 0x7f:
		return 1, Event{Type: EventKey, Key: KeyBackspace}, true
	}

	// UTF-8 multibyte
	if !utf8.FullRune(data) && !final {
		return 0, Event{}, false
	}
	r, size := utf8.DecodeRune(data)
	return size, Event{Type: EventKey, Key: KeyRune, Rune: r}, true
}

// parseEscape decodes a sequence starting with ESC
func (d *decoder) parseEscape(data []byte) (int, Event, bool) {
	if len(data) < 2 {
		return 0, Event{}, false
	}

	// Sequences declared by the terminal description come first
	for _, k := range d.keys {
		if bytes.HasPrefix(data, k.seq) {
			return len(k.seq), Event{Type: EventKey, Key: k.key}, true
		}
		if bytes.HasPrefix(k.seq, data) {
			return 0, Event{}, false
		}
	}

	switch data[1] {
	case 0x1b:
		// ESC ESC -> Alt+Escape
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}, true
	case '[':
		return parseCSI(data)
	case 'O':
		return parseSS3(data)
	}

	// Alt+Control character (ESC + 0x00-0x1F)
	if data[1] < 0x20 {
		return 2, Event{Type: EventKey, Key: controlKeys[data[1]], Modifiers: ModAlt}, true
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}, true
	}

	return 1, Event{Type: EventKey, Key: KeyEscape}, true
}

// parseCSI parses ESC [ ... including both mouse report framings
func parseCSI(data []byte) (int, Event, bool) {
	if len(data) < 3 {
		return 0, Event{}, false
	}

	switch data[2] {
	case 'M':
		return parseX10Mouse(data)
	case '<':
		return parseSGRMouse(data)
	}

	end := 2
	maxScan := min(len(data), 16)
	for end < maxScan {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			break
		}
		if b < 0x20 || b > 0x7e {
			// not a CSI sequence; drop the introducer
			return 2, Event{}, false
		}
		end++
	}
	if end >= maxScan {
		if len(data) >= 16 {
			return 2, Event{}, false
		}
		return 0, Event{}, false // Incomplete
	}
	if key, mod, ok := decodeCSIKey(data[2:end], data[end]); ok {
		return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}, true
	}

	// Unknown but valid CSI syntax, consumed silently
	return end + 1, Event{}, false
}

// parseSS3 parses ESC O x
func parseSS3(data []byte) (int, Event, bool) {
	if len(data) < 3 {
		return 0, Event{}, false
	}
	if key, ok := letterKeys[data[2]]; ok && key != KeyBacktab {
		return 3, Event{Type: EventKey, Key: key}, true
	}
	return 3, Event{}, false
}

// parseX10Mouse parses ESC [ M b x y where each byte carries a +32 offset and
// coordinates are 1-based
func parseX10Mouse(data []byte) (int, Event, bool) {
	if len(data) < 6 {
		return 0, Event{}, false
	}
	code := int(data[3]) - 32
	ev := mouseEvent(code, int(data[4])-33, int(data[5])-33, code&0x43 == 3)
	ev.Button = data[3]
	return 6, ev, true
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y M/m
func parseSGRMouse(data []byte) (int, Event, bool) {
	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		if len(data) >= 32 {
			return 3, Event{}, false
		}
		return 0, Event{}, false
	}
	if data[end] != 'M' && data[end] != 'm' {
		return end, Event{}, false
	}

	nums, ok := splitParams(data[3:end])
	if !ok || len(nums) != 3 {
		return end + 1, Event{}, false
	}

	// Convert to 0-indexed
	ev := mouseEvent(nums[0], nums[1]-1, nums[2]-1, data[end] == 'm')
	ev.Button = byte(nums[0])
	return end + 1, ev, true
}

// inputReader pumps a byte source through a decoder onto a channel
type inputReader struct {
	source  func(stop <-chan struct{}) ([]byte, error)
	dec     *decoder
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

type chunk struct {
	data []byte
	err  error
}

func newInputReader(source func(stop <-chan struct{}) ([]byte, error), keys []keySeq) *inputReader {
	return &inputReader{
		source:  source,
		dec:     newDecoder(keys),
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *inputReader) start() {
	go r.readLoop()
}

// stop signals the reader and waits briefly; a source blocked in Read is abandoned
func (r *inputReader) stop() {
	r.once.Do(func() { close(r.stopCh) })
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
	}
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) pump(out chan<- chunk) {
	defer close(out)
	for {
		data, err := r.source(r.stopCh)
		if err != nil {
			select {
			case out <- chunk{err: err}:
			case <-r.stopCh:
			}
			return
		}
		if data == nil {
			// EOF or stop
			return
		}
		select {
		case out <- chunk{data: data}:
		case <-r.stopCh:
			return
		}
	}
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	chunks := make(chan chunk)
	go r.pump(chunks)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var expired <-chan time.Time
		if r.dec.pending() {
			if timer == nil {
				timer = time.NewTimer(escapeTimeout)
			} else {
				timer.Reset(escapeTimeout)
			}
			expired = timer.C
		}

		select {
		case <-r.stopCh:
			return
		case <-expired:
			r.send(r.dec.expire()...)
		case c, ok := <-chunks:
			switch {
			case !ok:
				r.send(r.dec.expire()...)
				r.send(Event{Type: EventClosed})
				return
			case c.err != nil:
				r.send(Event{Type: EventError, Err: c.err})
				return
			default:
				r.send(r.dec.feed(c.data)...)
			}
		}
	}
}

// send delivers events without blocking past stop
func (r *inputReader) send(events ...Event) {
	for _, ev := range events {
		select {
		case r.eventCh <- ev:
		case <-r.stopCh:
			return
		}
	}
}
