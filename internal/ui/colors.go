package ui

import (
	"github.com/charmbracelet/lipgloss"

	"schedctl/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

// Level returns the style for a log severity.
func (p *Palette) Level(level models.Level) lipgloss.Style {
	switch level {
	case models.LevelError:
		return p.err
	case models.LevelWarning:
		return p.warn
	case models.LevelDebug:
		return p.help
	default:
		return lipgloss.NewStyle()
	}
}

// Run returns the style for a scheduler run status.
func (p *Palette) Run(status models.JobStatus) lipgloss.Style {
	switch {
	case status.Succeeded():
		return p.ok
	case status == models.JobError:
		return p.err
	default:
		return p.warn
	}
}

// Day returns the style for a timeline day status.
func (p *Palette) Day(status string) lipgloss.Style {
	switch status {
	case "ok":
		return p.ok
	case "error":
		return p.err
	case "warn":
		return p.warn
	default:
		return p.help
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
