package types

import "fmt"

// Severity classifies how serious an issue is.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "OFF"
	}
}

// ParseSeverity converts a configuration string into a Severity.
// Unknown values map to SeverityWarning.
func ParseSeverity(s string) Severity {
	switch s {
	case "error", "ERROR":
		return SeverityError
	case "warning", "WARNING":
		return SeverityWarning
	case "info", "INFO":
		return SeverityInfo
	case "off", "OFF":
		return SeverityOff
	default:
		return SeverityWarning
	}
}

// Position is a line/column location in a source file. Lines and columns
// are 1-indexed; Column counts bytes, not display cells.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Issue represents a single finding reported by a rule.
type Issue struct {
	Rule     string
	Filename string
	Severity Severity
	Message  string
	Start    Position
	End      Position
}

// ConfigRule holds the per-rule settings loaded from the configuration file.
type ConfigRule struct {
	Severity string         `yaml:"severity"`
	Params   map[string]any `yaml:"params"`
}
