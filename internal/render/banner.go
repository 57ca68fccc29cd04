// Package render produces the startup banner shown before a shell session.
package render

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// BannerInfo contains everything displayed in the startup banner.
type BannerInfo struct {
	// Version is the Go runtime version of the launched session.
	Version string
	// Text is the banner text from the configuration.
	Text string
	// Context is the mapping of injected variable names to values.
	Context map[string]any
	// HideContext suppresses the context listing.
	HideContext bool
}

// ASCII art logo - compact version that fits well in terminals
var gonchLogo = []string{
	"  __ _  ___  _ __   ___| |__  ",
	" / _` |/ _ \\| '_ \\ / __| '_ \\ ",
	"| (_| | (_) | | | | (__| | | |",
	" \\__, |\\___/|_| |_|\\___|_| |_|",
	" |___/                        ",
}

var (
	logoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

// FormatContext renders a context map as one "name: value" line per entry,
// sorted by name.
func FormatContext(context map[string]any) string {
	names := lo.Keys(context)
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %v", name, describeValue(context[name])))
	}
	return strings.Join(lines, "\n")
}

// describeValue keeps function values readable; %v would print a pointer.
func describeValue(v any) string {
	if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
		return fmt.Sprintf("%T", v)
	}
	return fmt.Sprintf("%v", v)
}

// Banner builds the full banner string: logo, version, banner text, and the
// context listing. termWidth controls whether the logo is shown.
func Banner(info BannerInfo, termWidth int) string {
	var out strings.Builder

	const logoWidth = 30
	const minGap = 3

	infoLines := []string{
		labelStyle.Render("runtime: ") + info.Version,
		"",
	}
	infoLines = append(infoLines, splitLines(textStyle.Render(info.Text))...)

	if termWidth >= logoWidth+minGap+20 {
		numLines := max(len(gonchLogo), len(infoLines))
		out.WriteString("\n")
		for i := 0; i < numLines; i++ {
			logoLine := strings.Repeat(" ", logoWidth)
			if i < len(gonchLogo) {
				logoLine = logoStyle.Render(gonchLogo[i])
			}
			infoLine := ""
			if i < len(infoLines) {
				infoLine = infoLines[i]
			}
			out.WriteString(logoLine + strings.Repeat(" ", minGap) + infoLine + "\n")
		}
	} else {
		// Terminal too narrow, skip the logo.
		out.WriteString("\n")
		for _, line := range infoLines {
			out.WriteString(line + "\n")
		}
	}

	if !info.HideContext && len(info.Context) > 0 {
		out.WriteString("\n" + nameStyle.Render("Context:") + "\n")
		out.WriteString(FormatContext(info.Context) + "\n")
	}

	return out.String()
}

// RenderBanner writes the banner to w.
func RenderBanner(w io.Writer, info BannerInfo, termWidth int) {
	fmt.Fprint(w, Banner(info, termWidth))
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
