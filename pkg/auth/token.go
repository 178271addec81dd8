package auth

import (
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "ospect"
	keyringUser    = "token"
	tokenFileName  = "token"
	fileMode       = 0600
)

// ErrNoToken indicates no token has been stored yet.
var ErrNoToken = errors.New("no token stored")

// SaveToken stores the access token in the OS keychain, falling back
// to a file in homeDir when no keychain is available.
func SaveToken(homeDir, token string) error {
	if token == "" {
		return errors.New("token required")
	}

	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return saveTokenFile(homeDir, token)
	}

	// clean up legacy file if it exists
	os.Remove(path.Join(homeDir, tokenFileName))
	return nil
}

// GetToken returns the stored access token, preferring the OS keychain
// and migrating any file-stored token into it.
func GetToken(homeDir string) (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil && token != "" {
		return token, nil
	}

	token, err = getTokenFile(homeDir)
	if err != nil {
		return "", err
	}

	if migrateErr := keyring.Set(keyringService, keyringUser, token); migrateErr == nil {
		slog.Info("migrated token from file to OS keychain")
		os.Remove(path.Join(homeDir, tokenFileName))
	}
	return token, nil
}

// DeleteToken removes the stored token from both keychain and file.
func DeleteToken(homeDir string) error {
	kerr := keyring.Delete(keyringService, keyringUser)
	ferr := os.Remove(path.Join(homeDir, tokenFileName))
	if kerr != nil && ferr != nil && !os.IsNotExist(ferr) {
		return errors.Wrap(ferr, "failed to delete token")
	}
	return nil
}

func saveTokenFile(homeDir, token string) error {
	p := path.Join(homeDir, tokenFileName)
	if err := os.WriteFile(p, []byte(token), fileMode); err != nil {
		return errors.Wrapf(err, "failed to write token file: %s", p)
	}
	return nil
}

func getTokenFile(homeDir string) (string, error) {
	p := path.Join(homeDir, tokenFileName)
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", errors.Wrapf(err, "failed to read token file: %s", p)
	}

	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
