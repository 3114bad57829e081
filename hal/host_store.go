//go:build !tinygo

package hal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"sentinel/core/config"
)

// hostStore persists the settings record as a JSON file via viper, the
// host stand-in for the appliance's on-flash configuration.
type hostStore struct {
	mu   sync.Mutex
	path string
}

func newHostStore(path string) *hostStore {
	return &hostStore{path: path}
}

func (s *hostStore) Load() (config.Settings, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.Settings{}, false, nil
		}
		return config.Settings{}, false, err
	}

	var out config.Settings
	if err := v.Unmarshal(&out); err != nil {
		return config.Settings{}, false, err
	}
	return out, true, nil
}

func (s *hostStore) Save(settings config.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("ssid", settings.SSID)
	v.Set("password", settings.Passphrase)
	v.Set("ip", settings.ServerHost)
	v.Set("port", settings.ServerPort)
	v.Set("auth", settings.ServerAuth)
	return v.WriteConfigAs(s.path)
}

func (s *hostStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
