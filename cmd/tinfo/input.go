package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tinfo/terminal"
)

func buildInputCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "input",
		Short: "Full-screen viewer for decoded key, mouse and resize events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := g.table("")
			if err != nil {
				return err
			}

			opts := append(g.cfg.ScreenOptions(g.log), terminal.WithMouse(true), terminal.WithHiddenCursor(true))
			screen := terminal.NewScreen(t, os.Stdout, os.Stdin, opts...)
			v := newViewer(screen)

			loop := &terminal.Loop{Screen: screen}
			if g.cfg.FrameRate > 0 {
				loop.FrameRate = g.cfg.FrameRate
				loop.OnFrame = v.frame
			}
			return loop.Run(cmd.Context(), v.handle)
		},
	}
}

const maxLog = 10

var (
	titleStyle  = terminal.Style{Fg: terminal.ColorWhite, Bg: terminal.ColorBlue, Bold: true}
	logStyle    = terminal.Style{}
	objStyle    = terminal.Style{Fg: terminal.ColorGreen, Bold: true}
	dragStyle   = terminal.Style{Fg: terminal.ColorYellow, Bold: true}
	statusStyle = terminal.Style{Fg: terminal.ColorCyan, Underline: true}
)

// viewer logs events and lets the user drag an [X] around with the mouse
type viewer struct {
	screen   *terminal.Screen
	w, h     int
	objX     int
	objY     int
	dragging bool
	log      []string
	frames   int
}

func newViewer(s *terminal.Screen) *viewer {
	w, h := s.Size()
	v := &viewer{screen: s, w: w, h: h, objX: w / 2, objY: h / 2}
	v.render()
	return v
}

func (v *viewer) addLog(s string) {
	if len(v.log) >= maxLog {
		copy(v.log, v.log[1:])
		v.log = v.log[:maxLog-1]
	}
	v.log = append(v.log, s)
}

func (v *viewer) handle(ev terminal.Event) error {
	switch ev.Type {
	case terminal.EventKey:
		if ev.Key == terminal.KeyCtrlC || ev.Key == terminal.KeyCtrlQ {
			return terminal.ErrQuit
		}
		v.addLog(formatKeyEvent(ev))

	case terminal.EventMouse:
		v.addLog(formatMouseEvent(ev))
		v.mouse(ev)

	case terminal.EventResize:
		v.w, v.h = ev.Width, ev.Height
		v.addLog(fmt.Sprintf("RESIZE: %dx%d", v.w, v.h))

	case terminal.EventError:
		return ev.Err

	case terminal.EventClosed:
		return terminal.ErrQuit
	}

	v.render()
	return nil
}

func (v *viewer) mouse(ev terminal.Event) {
	switch ev.MouseAction {
	case terminal.MouseActionPress:
		if ev.MouseBtn == terminal.MouseBtnLeft && ev.MouseX >= v.objX && ev.MouseX < v.objX+3 && ev.MouseY == v.objY {
			v.dragging = true
		}
	case terminal.MouseActionRelease:
		v.dragging = false
	case terminal.MouseActionDrag:
		if v.dragging {
			v.objX = min(max(ev.MouseX, 0), v.w-3)
			v.objY = min(max(ev.MouseY, 2), v.h-3)
		}
	}
}

func (v *viewer) frame(time.Time) error {
	v.frames++
	v.render()
	return nil
}

// render redraws from a cleared frame; the screen writes only what changed
func (v *viewer) render() {
	s := v.screen
	s.Clear()

	title := "Input Test - Press keys, move mouse, drag the [X] - Ctrl+C to quit"
	s.Put(max((v.w-len(title))/2, 0), 0, title, titleStyle)
	s.Put(0, 1, strings.Repeat("─", v.w), logStyle)

	for i, entry := range v.log {
		y := 2 + i
		if y >= v.h-3 {
			break
		}
		s.Put(1, y, entry, logStyle)
	}

	style := objStyle
	if v.dragging {
		style = dragStyle
	}
	s.Put(v.objX, v.objY, "[X]", style)

	s.Put(0, v.h-2, strings.Repeat("─", v.w), logStyle)
	status := fmt.Sprintf("Size: %dx%d | Object: (%d,%d) | Dragging: %v | Frames: %d",
		v.w, v.h, v.objX, v.objY, v.dragging, v.frames)
	s.Put(1, v.h-1, status, statusStyle)
}

func formatKeyEvent(ev terminal.Event) string {
	name := ev.Key.String()
	if ev.Key == terminal.KeyRune {
		name = fmt.Sprintf("%q", ev.Rune)
	}
	return fmt.Sprintf("KEY: %s%s raw=%q", ev.Modifiers, name, ev.Raw)
}

func formatMouseEvent(ev terminal.Event) string {
	return fmt.Sprintf("MOUSE: %s%s %s at (%d,%d) button=0x%02x",
		ev.Modifiers, ev.MouseBtn, ev.MouseAction, ev.MouseX, ev.MouseY, ev.Button)
}
