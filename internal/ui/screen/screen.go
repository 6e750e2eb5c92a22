// Package screen draws menus and the now-playing line on the terminal.
//
// Every write ends lines with "\r\n": the input listener puts the terminal
// in raw mode while it waits, and output may interleave with that.
package screen

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/llehouerou/cdplay/internal/keymap"
	"github.com/llehouerou/cdplay/internal/ui/cursor"
	"github.com/llehouerou/cdplay/internal/ui/render"
	"github.com/llehouerou/cdplay/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	scrollMargin = 2

	// title, blank, separator above help, help, status
	chromeLines = 5

	marker = "> "
)

// SizeFunc reports the terminal size in cells.
type SizeFunc func() (width, height int, err error)

// Option configures a Screen.
type Option func(*Screen)

// WithSize replaces terminal size detection.
func WithSize(size SizeFunc) Option {
	return func(s *Screen) { s.size = size }
}

// WithLogger sets the logger used for write failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Screen) { s.log = log }
}

// Screen is the presentation sink. It is safe for concurrent use: the
// playback loop and the MPRIS adapter may both trigger redraws.
type Screen struct {
	mu sync.Mutex

	out   io.Writer
	size  SizeFunc
	keys  *keymap.KeyMap
	help  help.Model
	theme *styles.Theme
	log   zerolog.Logger

	status string

	// scroll window of the last menu, reused while the title stays the same
	lastTitle string
	cur       cursor.Cursor
}

// New creates a screen writing to out.
func New(out io.Writer, keys *keymap.KeyMap, opts ...Option) *Screen {
	theme := styles.T()

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.FgMuted)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.FgSubtle)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.FgSubtle)

	s := &Screen{
		out:   out,
		size:  terminalSize(out),
		keys:  keys,
		help:  h,
		theme: theme,
		log:   zerolog.Nop(),
		cur:   cursor.New(scrollMargin),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render clears the screen and draws a menu with items[highlighted] marked.
func (s *Screen) Render(title string, items []string, highlighted int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, height := s.dimensions()
	st := s.theme.S()

	if title != s.lastTitle {
		s.lastTitle = title
		s.cur = cursor.New(scrollMargin)
	}
	s.cur.Jump(highlighted, len(items))
	rows := max(height-chromeLines, 1)
	s.cur.EnsureVisible(len(items), rows)
	start, end := s.cur.VisibleRange(len(items), rows)

	lines := []string{s.theme.Title(render.Truncate(title, width)), ""}
	for i := start; i < end; i++ {
		name := render.Truncate(items[i], width-len(marker))
		if i == s.cur.Pos() {
			lines = append(lines, st.Marker.Render(marker)+st.Cursor.Render(name))
		} else {
			lines = append(lines, "  "+st.Item.Render(name))
		}
	}

	lines = append(lines, s.footer(width, s.keys.Menu.Help())...)
	s.flush(lines)
}

// Announce clears the screen and shows a single now-playing line with the
// transport key help.
func (s *Screen) Announce(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, _ := s.dimensions()
	st := s.theme.S()

	lines := []string{st.NowPlaying.Render(render.Truncate(text, width))}
	lines = append(lines, s.footer(width, s.keys.Transport.Help())...)
	s.flush(lines)
}

// Report keeps a message that is shown under the next screen drawn, once.
func (s *Screen) Report(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}

func (s *Screen) footer(width int, bindings []key.Binding) []string {
	s.help.Width = width
	lines := []string{
		s.theme.S().Subtle.Render(render.Separator(width)),
		s.help.ShortHelpView(bindings),
	}
	if s.status != "" {
		lines = append(lines, s.theme.S().Error.Render(render.Truncate(s.status, width)))
		s.status = ""
	}
	return lines
}

func (s *Screen) flush(lines []string) {
	var b strings.Builder
	b.WriteString(ansi.EraseEntireScreen)
	b.WriteString(ansi.CursorHomePosition)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	s.write(b.String())
}

func (s *Screen) write(text string) {
	if _, err := io.WriteString(s.out, text); err != nil {
		s.log.Warn().Err(err).Msg("write screen")
	}
}

func (s *Screen) dimensions() (int, int) {
	width, height, err := s.size()
	if err != nil || width <= 0 || height <= 0 {
		return defaultWidth, defaultHeight
	}
	return width, height
}

func terminalSize(out io.Writer) SizeFunc {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() (int, int, error) { return defaultWidth, defaultHeight, nil }
	}
	return func() (int, int, error) { return term.GetSize(int(f.Fd())) }
}
