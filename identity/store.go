// Package identity persists the (user name, client id, private key) tuple that lets a
// client reconnect as the same principal across process restarts.
package identity

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"securexfer/constants"
)

// ErrIdentityCorrupt is returned when the identity file exists but is missing one of its
// required lines.
var ErrIdentityCorrupt = errors.New("identity: file is missing required lines")

// Identity is the tuple recovered from the identity file.
type Identity struct {
	UserName       string
	ClientIDHex    string
	PrivateKeyB64  string
}

// Store reads and writes the identity file and the standalone private-key file.
type Store struct {
	IdentityPath  string
	PrivateKeyPath string
}

// NewStore builds a Store using the given paths.
func NewStore(identityPath, privateKeyPath string) *Store {
	return &Store{IdentityPath: identityPath, PrivateKeyPath: privateKeyPath}
}

// Exists reports whether the identity file is present: this is the ⇔ condition the session
// machine uses to decide between the reconnect and register branches.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.IdentityPath)
	return err == nil
}

// Load reads the identity file. It fails with ErrIdentityCorrupt if the user name, client
// id or private key line is missing, deliberately NOT falling back to registration: a stale
// client id elsewhere would conflict with a fresh one. priv.key remains the canonical source
// of the key when both are present, read separately via ReadPrivateKeyFile.
func (s *Store) Load() (Identity, error) {
	f, err := os.Open(s.IdentityPath)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: opening %s: %v", ErrIdentityCorrupt, s.IdentityPath, err)
	}
	defer f.Close()

	lines := make([]string, 0, 3)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Identity{}, fmt.Errorf("%w: reading %s: %v", ErrIdentityCorrupt, s.IdentityPath, err)
	}

	if len(lines) < 3 || strings.TrimSpace(lines[0]) == "" || strings.TrimSpace(lines[1]) == "" ||
		strings.TrimSpace(lines[2]) == "" {
		return Identity{}, fmt.Errorf("%w: %s has %d lines, need user name, client id and private key",
			ErrIdentityCorrupt, s.IdentityPath, len(lines))
	}

	id := Identity{
		UserName:      lines[0],
		ClientIDHex:   lines[1],
		PrivateKeyB64: lines[2],
	}
	return id, nil
}

// WriteIdentity truncates the identity file and writes the user name and client id as its
// first two lines.
func (s *Store) WriteIdentity(userName, clientIDHex string) error {
	content := userName + "\n" + clientIDHex + "\n"
	if err := os.WriteFile(s.IdentityPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing identity file %s: %w", s.IdentityPath, err)
	}
	return nil
}

// AppendPrivateKey appends the base64-encoded private key as the third line of the
// identity file.
func (s *Store) AppendPrivateKey(base64Key string) error {
	f, err := os.OpenFile(s.IdentityPath, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("appending private key to %s: %w", s.IdentityPath, err)
	}
	defer f.Close()
	if _, err := f.WriteString(base64Key + "\n"); err != nil {
		return fmt.Errorf("appending private key to %s: %w", s.IdentityPath, err)
	}
	return nil
}

// WritePrivateKeyFile writes the standalone priv.key file.
func (s *Store) WritePrivateKeyFile(base64Key string) error {
	if err := os.WriteFile(s.PrivateKeyPath, []byte(base64Key), 0o600); err != nil {
		return fmt.Errorf("writing private key file %s: %w", s.PrivateKeyPath, err)
	}
	return nil
}

// ReadPrivateKeyFile reads the standalone priv.key file, the canonical source when both
// priv.key and me.info carry a private key line.
func (s *Store) ReadPrivateKeyFile() (string, error) {
	data, err := os.ReadFile(s.PrivateKeyPath)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrIdentityCorrupt, s.PrivateKeyPath, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Persist is the single write path used during registration: it keeps me.info and priv.key
// in sync by construction, rather than leaving two independent call sites that can drift.
func (s *Store) Persist(userName, clientIDHex, privateKeyB64 string) error {
	if err := s.WriteIdentity(userName, clientIDHex); err != nil {
		return err
	}
	if err := s.AppendPrivateKey(privateKeyB64); err != nil {
		return err
	}
	return s.WritePrivateKeyFile(privateKeyB64)
}

// DefaultStore builds a Store rooted at the default file names (constants.DefaultIdentityFile,
// constants.DefaultPrivateKeyFile) in the current working directory.
func DefaultStore() *Store {
	return NewStore(constants.DefaultIdentityFile, constants.DefaultPrivateKeyFile)
}
