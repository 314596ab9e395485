package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plantforge/plantforge/pkg/pipeline"
)

// writeOutput writes data to path, creating parent directories as needed.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output flag and the input
// file. A known artifact extension on output is stripped so that
// "plant.svg" with --format svg,png yields plant.svg and plant.png.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "plant"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	longest := ""
	for _, format := range pipeline.Formats {
		ext := "." + pipeline.Extension(format)
		if strings.HasSuffix(output, ext) && len(ext) > len(longest) {
			longest = ext
		}
	}
	return strings.TrimSuffix(output, longest)
}

// artifactPath returns the file written for one format.
func artifactPath(base, format string) string {
	return base + "." + pipeline.Extension(format)
}
