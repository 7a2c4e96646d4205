package cfg

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Maildir is the root directory containing the local mail folders.
	Maildir string `yaml:"maildir"`
	// Remote lists the folder names available through the IMAP proxy.
	Remote []string `yaml:"remote"`
	Proxy  Proxy    `yaml:"proxy"`
	// History is the file keeping folder count snapshots. Empty disables it.
	History string `yaml:"history"`
	// RateLimit restricts message copies, in bytes per second. 0 = unlimited.
	RateLimit float64 `yaml:"rateLimit"`
}

type Proxy struct {
	// Socket is the unix socket the proxy process listens on.
	Socket string `yaml:"socket"`
	// Timeout applied to each proxy exchange, in seconds. 0 blocks
	// indefinitely.
	Timeout int `yaml:"timeout"`
}

func newConfig() *Config {
	return &Config{}
}

// LoadFromFile loads the configuration from the file
func LoadFromFile(fileName string) (*Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	return loadConfig(file)
}

// loadConfig from a io.ReadCloser
func loadConfig(reader io.ReadCloser) (*Config, error) {
	defer reader.Close()
	decoder := yaml.NewDecoder(reader)
	config := newConfig()
	err := decoder.Decode(config)
	if err != nil {
		return nil, err
	}
	setDefaults(config)
	return config, nil
}

func setDefaults(config *Config) {
	if config.Maildir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			config.Maildir = filepath.Join(home, "Maildir")
		}
	}
}
