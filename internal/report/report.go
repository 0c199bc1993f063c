// Package report renders solver output as terminal tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexshd/rootfind"
	"github.com/alexshd/rootfind/internal/history"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCellStyle
			}
			return CellStyle
		})
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'g', 12, 64)
}

// Result writes the root summary followed by the iteration record.
// A failed solve prints the error and whatever was recorded before it.
func Result(w io.Writer, eq rootfind.Equation, res rootfind.Result, err error) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s  ·  %s", res.Method, eq.Name)))

	if err != nil {
		fmt.Fprintln(w, ErrorStyle.Render("failed: "+err.Error()))
	} else {
		fmt.Fprintf(w, "%s %s\n", MutedStyle.Render("root:"), RootStyle.Render(num(res.Root)))
		fmt.Fprintf(w, "%s %d\n", MutedStyle.Render("iterations:"), res.Iterations)
		if r := res.Residual(); !math.IsNaN(r) {
			fmt.Fprintf(w, "%s %s\n", MutedStyle.Render("residual:"), num(r))
		}
	}

	if len(res.History) == 0 {
		return
	}

	var t *table.Table
	if res.Method == rootfind.MethodBisection {
		t = newTable("k", "a", "b", "m", "f(m)", "(b-a)/2")
		for _, s := range res.History {
			t.Row(strconv.Itoa(s.K), num(s.A), num(s.B), num(s.X), num(s.FX), num(s.Delta))
		}
	} else {
		t = newTable("k", "x", "f(x)", "|step|")
		for _, s := range res.History {
			t.Row(strconv.Itoa(s.K), num(s.X), num(s.FX), num(s.Delta))
		}
	}
	fmt.Fprintln(w, t.Render())
}

// History writes the results table: one row per recorded solve.
func History(w io.Writer, entries []history.Entry) {
	t := newTable("#", "method", "result", "iterations")
	for i, e := range entries {
		result := num(e.Root)
		if e.Error != "" {
			result = e.Error
		}
		t.Row(strconv.Itoa(i+1), string(e.Method), result, strconv.Itoa(e.Iterations))
	}
	fmt.Fprintln(w, t.Render())
}

// Samples writes the sampled curve; undefined points show as "—".
func Samples(w io.Writer, points []rootfind.Point) {
	t := newTable("x", "f(x)")
	for _, p := range points {
		y := "—"
		if p.Defined {
			y = num(p.Y)
		}
		t.Row(num(p.X), y)
	}
	fmt.Fprintln(w, t.Render())
}

// Brackets writes sign-changing intervals found on the grid.
func Brackets(w io.Writer, brackets []rootfind.Bracket) {
	if len(brackets) == 0 {
		fmt.Fprintln(w, MutedStyle.Render("no sign change on the sampled grid"))
		return
	}

	t := newTable("a", "b", "f(a)", "f(b)")
	for _, b := range brackets {
		t.Row(num(b.A), num(b.B), num(b.FA), num(b.FB))
	}
	fmt.Fprintln(w, t.Render())
}

// Sweep writes one row per tolerance level with the error against the
// reference root and the correct digits it implies.
func Sweep(w io.Writer, method rootfind.Method, points []rootfind.SweepPoint) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s  ·  tolerance sweep", method)))

	t := newTable("ε", "root", "iterations", "|error|", "digits", "status")
	for _, p := range points {
		status := "ok"
		if p.Err != nil {
			status = p.Err.Error()
		}
		errCell, digits := "—", "—"
		if !math.IsNaN(p.Error) {
			errCell = strconv.FormatFloat(p.Error, 'e', 2, 64)
			digits = strconv.Itoa(rootfind.CorrectDigits(p.Error))
		}
		t.Row(strconv.FormatFloat(p.Tolerance, 'e', 0, 64), num(p.Root),
			strconv.Itoa(p.Iterations), errCell, digits, status)
	}
	fmt.Fprintln(w, t.Render())
}
