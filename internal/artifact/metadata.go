package artifact

import (
	"archive/zip"
	"bufio"
	"fmt"
	"strings"
)

// WheelMetadata is the subset of package metadata the validation stage
// inspects before an artifact is accepted into the store.
type WheelMetadata struct {
	Name    string
	Version string
}

// ReadWheelMetadata opens the wheel (a zip archive) and parses the METADATA
// file from its .dist-info directory.
func ReadWheelMetadata(path string) (WheelMetadata, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return WheelMetadata{}, fmt.Errorf("open wheel %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".dist-info/METADATA") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return WheelMetadata{}, fmt.Errorf("open METADATA in %s: %w", path, err)
		}
		defer rc.Close()
		var md WheelMetadata
		scanner := bufio.NewScanner(rc)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				// headers end at the first blank line
				break
			}
			if v, ok := strings.CutPrefix(line, "Name: "); ok {
				md.Name = v
			}
			if v, ok := strings.CutPrefix(line, "Version: "); ok {
				md.Version = v
			}
		}
		if err := scanner.Err(); err != nil {
			return WheelMetadata{}, fmt.Errorf("read METADATA in %s: %w", path, err)
		}
		if md.Name == "" || md.Version == "" {
			return md, fmt.Errorf("wheel %s: METADATA missing Name or Version", path)
		}
		return md, nil
	}
	return WheelMetadata{}, fmt.Errorf("wheel %s has no .dist-info/METADATA", path)
}
