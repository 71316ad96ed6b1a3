package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/archive"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(w, string(data))
	return err
}

// parseTag accepts a tag name ("TempData") or its subfolder ("temp").
func parseTag(s string) (models.Tag, error) {
	s = strings.TrimSpace(s)
	for _, tag := range models.Tags() {
		if strings.EqualFold(s, string(tag)) {
			return tag, nil
		}
	}
	if tag, ok := archive.SubfolderTag(strings.ToLower(s)); ok {
		return tag, nil
	}
	names := make([]string, 0, len(models.Tags()))
	for _, tag := range models.Tags() {
		names = append(names, string(tag))
	}
	return "", fmt.Errorf("unknown data type %q (want one of %s)", s, strings.Join(names, ", "))
}

func kindNames() string {
	return "auto, design, specs, temp, discharge"
}
