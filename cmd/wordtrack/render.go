package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"wordtrack/internal/wt"

	"github.com/fatih/color"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"golang.org/x/term"
)

const (
	defaultSince  = "1 day ago"
	fallbackWidth = 80
	nameWidth     = 32
)

var sinceParser = newSinceParser()

func newSinceParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// parseSince accepts a calendar date (2006-01-02), "today", or a natural
// language expression such as "yesterday" or "3 days ago", relative to now.
func parseSince(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = defaultSince
	}
	if t, err := time.ParseInLocation("2006-01-02", text, now.Location()); err == nil {
		return t, nil
	}
	if strings.EqualFold(text, "today") {
		return now, nil
	}

	r, err := sinceParser.Parse(text, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --since %q: %w", text, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("parsing --since %q: not a date", text)
	}
	return r.Time.In(now.Location()), nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

func formatNet(n int64) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func truncateName(name string, width int) string {
	r := []rune(name)
	if len(r) <= width {
		return name
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "~"
}

// barWidths scales added and removed to fit in avail columns, keeping any
// non-zero value at least one column wide.
func barWidths(added, removed, largest int64, avail int) (int, int) {
	if largest <= 0 || avail <= 0 {
		return 0, 0
	}
	scale := func(n int64) int {
		if n <= 0 {
			return 0
		}
		w := int(n * int64(avail) / largest)
		if w == 0 {
			w = 1
		}
		return w
	}
	return scale(added), scale(removed)
}

func printProgress(w io.Writer, entries []wt.ProgressEntry, width int) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	bold := color.New(color.Bold)

	var largest int64
	for _, e := range entries {
		if e.Added+e.Removed > largest {
			largest = e.Added + e.Removed
		}
	}

	// name, two spaces, "+added -removed" column, two spaces, bar
	avail := width - nameWidth - 2 - 16 - 2
	for _, e := range entries {
		name := truncateName(e.Name, nameWidth)
		if e.Kind == "folder" {
			bold.Fprintf(w, "%-*s", nameWidth, name+"/")
		} else {
			fmt.Fprintf(w, "%-*s", nameWidth, name)
		}
		fmt.Fprintf(w, "  %-16s  ", fmt.Sprintf("+%d -%d", e.Added, e.Removed))

		plus, minus := barWidths(e.Added, e.Removed, largest, avail)
		green.Fprint(w, strings.Repeat("+", plus))
		red.Fprint(w, strings.Repeat("-", minus))
		fmt.Fprintln(w)
	}
}

func printSummary(w io.Writer, sum *wt.Summary, width int) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	net := func(n int64) {
		switch {
		case n > 0:
			green.Fprint(w, formatNet(n))
		case n < 0:
			red.Fprint(w, formatNet(n))
		default:
			fmt.Fprint(w, "0")
		}
	}

	fmt.Fprintf(w, "Summary for %s\n\n", sum.Date)
	fmt.Fprint(w, "Today:      ")
	net(sum.Today)
	fmt.Fprint(w, "\nThis week:  ")
	net(sum.ThisWeek)
	fmt.Fprintf(w, "\nTotal:      %d words\n", sum.Total)

	if len(sum.Trend) > 0 {
		var largest int64
		for _, d := range sum.Trend {
			if abs(d.Net) > largest {
				largest = abs(d.Net)
			}
		}
		avail := width - 10 - 2 - 8 - 2
		fmt.Fprintln(w, "\nTrend:")
		for _, d := range sum.Trend {
			fmt.Fprintf(w, "%s  %8s  ", d.Date, formatNet(d.Net))
			if d.Net >= 0 {
				n, _ := barWidths(d.Net, 0, largest, avail)
				green.Fprint(w, strings.Repeat("#", n))
			} else {
				n, _ := barWidths(-d.Net, 0, largest, avail)
				red.Fprint(w, strings.Repeat("#", n))
			}
			fmt.Fprintln(w)
		}
	}

	if len(sum.Documents) > 0 {
		fmt.Fprintln(w, "\nDocuments:")
		for _, d := range sum.Documents {
			fmt.Fprintf(w, "%-*s  %8d\n", nameWidth, truncateName(d.Name, nameWidth), d.Words)
		}
	}
}

func printTree(w io.Writer, node *wt.TreeNode, indent string) {
	fmt.Fprintf(w, "%s%s/  (%d words)\n", indent, node.Folder.Name, node.TotalWords())
	for _, child := range node.Folders {
		printTree(w, child, indent+"  ")
	}
	for _, doc := range node.Documents {
		fmt.Fprintf(w, "%s  %s  (%d words)\n", indent, doc.Name, doc.TotalWords)
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
