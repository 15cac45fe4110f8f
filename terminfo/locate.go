package terminfo

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SystemDirs are searched after the directories named by the environment
var SystemDirs = []string{
	"/etc/terminfo",
	"/lib/terminfo",
	"/usr/share/terminfo",
	"/usr/lib/terminfo",
	"/usr/share/lib/terminfo",
}

// SearchDirs returns the database roots in ncurses order: $TERMINFO, ~/.terminfo,
// each element of $TERMINFO_DIRS, then SystemDirs. An empty TERMINFO_DIRS element
// stands for SystemDirs at that position.
func SearchDirs(getenv func(string) string) []string {
	var dirs []string
	if d := getenv("TERMINFO"); d != "" {
		dirs = append(dirs, d)
	}
	if home := getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".terminfo"))
	}
	if list := getenv("TERMINFO_DIRS"); list != "" {
		for _, d := range strings.Split(list, ":") {
			if d == "" {
				dirs = append(dirs, SystemDirs...)
				continue
			}
			dirs = append(dirs, d)
		}
	}
	dirs = append(dirs, SystemDirs...)

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// Locator resolves terminal names to decoded tables
type Locator struct {
	// Dirs are the database roots in search order; nil means SearchDirs(os.Getenv)
	Dirs []string

	// Builtin enables the linked-in descriptions after the filesystem search fails
	Builtin bool

	// Logger receives lookup diagnostics; nil discards them
	Logger *slog.Logger

	// ReadFile reads a candidate; nil means os.ReadFile
	ReadFile func(string) ([]byte, error)
}

// Candidates lists the files tried for name: in each root the hex-named
// subdirectory first, then the one named by the raw first character.
func (l *Locator) Candidates(name string) []string {
	if name == "" {
		return nil
	}
	dirs := l.Dirs
	if dirs == nil {
		dirs = SearchDirs(os.Getenv)
	}
	hex := fmt.Sprintf("%02x", name[0])
	paths := make([]string, 0, 2*len(dirs))
	for _, d := range dirs {
		paths = append(paths,
			filepath.Join(d, hex, name),
			filepath.Join(d, name[:1], name),
		)
	}
	return paths
}

// Load finds and decodes the description for name. The first readable candidate
// wins; a candidate that reads but does not decode aborts the search.
func (l *Locator) Load(name string) (*Table, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	log := l.logger()
	read := l.ReadFile
	if read == nil {
		read = os.ReadFile
	}

	candidates := l.Candidates(name)
	for _, path := range candidates {
		data, err := read(path)
		if err != nil {
			log.Debug("terminfo candidate skipped", "path", path, "error", err)
			continue
		}
		t, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("terminfo %s: %w", path, err)
		}
		log.Debug("terminfo loaded", "term", name, "path", path)
		report(log, name, t)
		return t, nil
	}

	searched := slices.Clone(candidates)
	if l.Builtin {
		t, err := Builtin(name)
		if err == nil {
			log.Debug("terminfo loaded from builtin", "term", name)
			return t, nil
		}
		searched = append(searched, "builtin")
	}
	return nil, &LookupError{Name: name, Searched: searched, Err: ErrNotFound}
}

// Load resolves name with the environment's search directories
func Load(name string) (*Table, error) {
	return (&Locator{}).Load(name)
}

func (l *Locator) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func report(log *slog.Logger, name string, t *Table) {
	for _, w := range t.warnings {
		log.Warn("terminfo corrupt string offset", "term", name, "capability", w.Capability.String(),
			"offset", w.Offset, "size", w.TableSize)
	}
	if t.extStatus == ExtendedMalformed {
		log.Warn("terminfo extended section ignored", "term", name, "error", t.extErr)
	}
}

func validName(name string) error {
	if name == "" || strings.ContainsRune(name, '/') || strings.HasPrefix(name, ".") {
		return &LookupError{Name: name, Err: ErrInvalidName}
	}
	return nil
}
