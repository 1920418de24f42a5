package auth

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// TokenFile persists the current session between process restarts, the same
// role browser local storage plays for a hosted client. An empty path
// disables persistence.
type TokenFile struct {
	Path string
}

func NewTokenFile(path string) *TokenFile {
	return &TokenFile{Path: path}
}

// Load reads the persisted session. Missing files and expired sessions
// resolve to nil without error.
func (t *TokenFile) Load() (*Session, error) {
	if t.Path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// A corrupt file is indistinguishable from no session.
		_ = os.Remove(t.Path)
		return nil, nil
	}

	if sess.ExpiresAt <= time.Now().UTC().UnixMilli() {
		_ = os.Remove(t.Path)
		return nil, nil
	}
	return &sess, nil
}

func (t *TokenFile) Store(sess *Session) error {
	if t.Path == "" {
		return nil
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(t.Path, raw, 0o600)
}

func (t *TokenFile) Clear() error {
	if t.Path == "" {
		return nil
	}

	err := os.Remove(t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
