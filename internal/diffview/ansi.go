package diffview

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ansiLog = log.New(log.Writer(), "[diffview] ", log.Flags())

// sgrPattern matches one CSI SGR sequence: ESC '[' <params> 'm', params
// being zero or more ';'-separated decimal numbers (an empty parameter
// list means "reset", same as an explicit 0).
var sgrPattern = regexp.MustCompile("\x1b\\[([0-9;]*)m")

// basic256 are the 8 basic ANSI colours in SGR 30-37/40-47 order.
var basic256 = []string{"0", "1", "2", "3", "4", "5", "6", "7"}

// bright256 are the 8 bright ANSI colours in SGR 90-97/100-107 order.
var bright256 = []string{"8", "9", "10", "11", "12", "13", "14", "15"}

// ParseANSI turns the diff subprocess's raw byte stream into a single
// lipgloss-rendered string, interpreting only the CSI SGR subset spec.md
// §6 enumerates: SGR 0, 1, 2, 4, 5, 7; 30-37/40-47 basic colours; 38;5;n /
// 48;5;n 256-colour sequences; 90-97/100-107 bright colours. Any other SGR
// parameter is, per §6, "an implementation error" — it is logged loudly and
// otherwise ignored rather than crashing the viewer on unexpected input.
func ParseANSI(data []byte) string {
	text := string(data)
	var b strings.Builder
	style := lipgloss.NewStyle()

	pos := 0
	for {
		loc := sgrPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			b.WriteString(style.Render(text[pos:]))
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		paramStart, paramEnd := pos+loc[2], pos+loc[3]

		if start > pos {
			b.WriteString(style.Render(text[pos:start]))
		}
		style = applySGR(style, text[paramStart:paramEnd])
		pos = end
	}
	return b.String()
}

// applySGR folds one CSI SGR parameter list into style, following the
// mutation rules for the spec.md §6 subset.
func applySGR(style lipgloss.Style, params string) lipgloss.Style {
	fields := splitParams(params)
	for i := 0; i < len(fields); i++ {
		n := fields[i]
		switch {
		case n == 0:
			style = lipgloss.NewStyle()
		case n == 1:
			style = style.Bold(true)
		case n == 2:
			style = style.Faint(true)
		case n == 4:
			style = style.Underline(true)
		case n == 5:
			style = style.Blink(true)
		case n == 7:
			style = style.Reverse(true)
		case n >= 30 && n <= 37:
			style = style.Foreground(lipgloss.Color(basic256[n-30]))
		case n >= 40 && n <= 47:
			style = style.Background(lipgloss.Color(basic256[n-40]))
		case n >= 90 && n <= 97:
			style = style.Foreground(lipgloss.Color(bright256[n-90]))
		case n >= 100 && n <= 107:
			style = style.Background(lipgloss.Color(bright256[n-100]))
		case n == 38 && i+2 < len(fields) && fields[i+1] == 5:
			style = style.Foreground(lipgloss.Color(strconv.Itoa(fields[i+2])))
			i += 2
		case n == 48 && i+2 < len(fields) && fields[i+1] == 5:
			style = style.Background(lipgloss.Color(strconv.Itoa(fields[i+2])))
			i += 2
		default:
			ansiLog.Printf("unrecognised SGR parameter %d (full sequence %q)", n, params)
		}
	}
	return style
}

// splitParams parses a ';'-separated SGR parameter list; an empty field
// (including the whole-string-empty "reset" case) is parameter 0.
func splitParams(params string) []int {
	if params == "" {
		return []int{0}
	}
	parts := strings.Split(params, ";")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			out = append(out, 0)
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
