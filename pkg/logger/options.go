package logger

import (
	"log/slog"
	"time"

	"github.com/fatih/color"
)

type SourceFileMode int

const (
	// Nop does nothing.
	Nop SourceFileMode = iota

	// ShortFile produces only the filename (for example main.go:69).
	ShortFile

	// LongFile produces the full file path.
	LongFile
)

type Options struct {
	// Level reports the minimum level to log.
	Level slog.Leveler

	TimeFormat string

	SrcFileMode SourceFileMode

	// MsgPrefix is printed before every message, default: white colored "| ".
	MsgPrefix string

	MsgColor *color.Color

	// NoColor strips ANSI sequences, for log collectors that do not render them.
	NoColor bool
}

var DefaultOptions = &Options{
	Level:       slog.LevelDebug,
	TimeFormat:  time.DateTime,
	SrcFileMode: ShortFile,
	MsgPrefix:   color.HiWhiteString("| "),
	MsgColor:    color.New(),
}

// WithNoColor returns a copy of o with colors disabled when noColor is set.
func (o Options) WithNoColor(noColor bool) *Options {
	o.NoColor = noColor
	if noColor {
		o.MsgPrefix = "| "
	}
	return &o
}
