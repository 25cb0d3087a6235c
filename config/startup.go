// Package config reads the three-line startup descriptor file that names the server to
// dial, the user's name, and the file to upload.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// ErrStartupMalformed is returned when the descriptor file has fewer than three lines.
var ErrStartupMalformed = errors.New("config: startup file must have three lines")

// Startup is the parsed form of the startup descriptor file.
type Startup struct {
	ServerAddr string // host:port
	UserName   string
	FilePath   string
}

// ReadStartup parses the descriptor at path.
func ReadStartup(path string) (Startup, error) {
	f, err := os.Open(path)
	if err != nil {
		return Startup{}, fmt.Errorf("%w: opening %s: %v", ErrStartupMalformed, path, err)
	}
	defer f.Close()

	lines := make([]string, 0, 3)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Startup{}, fmt.Errorf("%w: reading %s: %v", ErrStartupMalformed, path, err)
	}
	if len(lines) < 3 {
		return Startup{}, fmt.Errorf("%w: %s has %d lines, need 3", ErrStartupMalformed, path, len(lines))
	}

	return Startup{ServerAddr: lines[0], UserName: lines[1], FilePath: lines[2]}, nil
}
