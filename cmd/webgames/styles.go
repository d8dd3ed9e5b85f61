package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/younwookim/webgames/internal/infrastructure/config"
	"github.com/younwookim/webgames/internal/infrastructure/storage"
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

func renderVariants(settings *config.Settings) string {
	names := settings.VariantNames()
	if len(names) == 0 {
		return styleMuted.Render("No variants configured.")
	}

	t := newTable("Variant", "Engine", "Title", "Bindings", "Sprites")
	for _, name := range names {
		v := settings.Variants[name]
		bindings := "default"
		if len(v.Bindings) > 0 {
			bindings = strconv.Itoa(len(v.Bindings))
		}
		t.Row(name, v.Engine, v.Title, bindings, strconv.Itoa(len(v.Sprites)))
	}
	return styleTitle.Render("Variants") + "\n" + t.String()
}

func renderTunables(t *config.Tunables) string {
	names := t.Names()
	if len(names) == 0 {
		return styleMuted.Render("No tunables loaded.")
	}

	values := t.Snapshot()
	tbl := newTable("Name", "Value")
	for _, name := range names {
		tbl.Row(name, strconv.FormatFloat(values[name], 'g', -1, 64))
	}
	return styleTitle.Render("Tunables") + "\n" + tbl.String()
}

func renderRecordings(entries []storage.RecordingEntry) string {
	if len(entries) == 0 {
		return styleMuted.Render("No recordings stored yet.")
	}

	t := newTable("ID", "Variant", "Ticks", "Events", "Recorded")
	for _, e := range entries {
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.Variant,
			strconv.FormatUint(e.Ticks, 10),
			strconv.Itoa(e.Events),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return styleTitle.Render("Recordings") + "\n" + t.String()
}

func renderSummary(title string, pairs ...[2]string) string {
	out := styleTitle.Render(title)
	for _, p := range pairs {
		out += fmt.Sprintf("\n  %s %s", styleMuted.Render(p[0]+":"), p[1])
	}
	return out
}
