// Package output renders command results for terminals, pipes and machines.
package output

import "fmt"

// Mode selects how results are written.
type Mode string

// OutputMode is an alias kept for call sites that spell the type out.
type OutputMode = Mode

// Output modes.
const (
	ModeAuto     Mode = "auto"     // text on a terminal, markdown otherwise
	ModeText     Mode = "text"     // styled text for humans
	ModeMarkdown Mode = "markdown" // plain markdown, no ANSI codes
	ModeJSON     Mode = "json"     // machine-readable
)

// Modes lists every accepted mode, for flag completion.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}
}

// ParseMode validates s. The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return m, nil
	case "md":
		return ModeMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want auto, text, markdown or json)", s)
	}
}
