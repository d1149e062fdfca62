package checker

import (
	"os"
	"strings"
)

// SourceCode holds a file's physical lines for issue rendering.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode loads a file and splits it into lines. Line endings are
// stripped; renderers deal in display text only.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(string(content)), nil
}

// NewSourceCode splits in-memory source into lines.
func NewSourceCode(content string) *SourceCode {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	return &SourceCode{Lines: lines}
}
