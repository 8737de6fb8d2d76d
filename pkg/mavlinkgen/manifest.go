package mavlinkgen

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loadManifestDialects reads the host project's manifest, if any, and
// returns the dialect names it has feature-flagged on. The manifest format
// is one dialect name per line; blank lines and lines starting with "#" are
// ignored. An empty path is not an error: it simply means no manifest was
// supplied, matching the "optional" wording in the config surface.
func loadManifestDialects(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mavlinkgen: reading manifest %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mavlinkgen: reading manifest %s: %w", path, err)
	}
	return names, nil
}
