package mcpserver

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// documentArg returns the workspace document a tool works on: the inline
// "document" argument when given, otherwise the contents of "path".
func documentArg(args map[string]any) ([]byte, error) {
	if doc, _ := args["document"].(string); strings.TrimSpace(doc) != "" {
		return []byte(doc), nil
	}
	path, _ := args["path"].(string)
	if path == "" {
		return nil, errors.New("either path or document is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return data, nil
}
