package minecraft

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const propertiesFile = "server.properties"

// ParseServerProperties reads dir/server.properties. A missing file yields a
// nil map and no error.
func ParseServerProperties(dir string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, propertiesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	props := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		props[key] = value
	}
	return props, nil
}

// ServerPort returns server-port, or -1 when unknown
func ServerPort(props map[string]string) int {
	port, err := strconv.Atoi(props["server-port"])
	if err != nil {
		return -1
	}
	return port
}

// ServerMOTD returns motd, or "Unknown" when unset
func ServerMOTD(props map[string]string) string {
	motd, ok := props["motd"]
	if !ok {
		return "Unknown"
	}
	return motd
}
