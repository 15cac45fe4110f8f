//go:build !unix

package terminal

import "os"

// no window-change signal; resizes surface only through Screen.Size
func notifyResize(c chan<- os.Signal) {}
