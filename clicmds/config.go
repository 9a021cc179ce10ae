package clicmds

import (
	"io/ioutil"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Drivers that can back a fill run
const (
	DriverGCD      = "gcd"
	DriverChromedp = "chromedp"
	DriverSelenium = "selenium"
)

// Config of a single fill run
type Config struct {
	URL              string                 `toml:"url"`
	Driver           string                 `toml:"driver"`
	ChromePath       string                 `toml:"chrome_path"`
	RemoteURL        string                 `toml:"remote_url"`
	InsecureRemote   bool                   `toml:"insecure_remote"`
	LeaserSocket     string                 `toml:"leaser_socket"`
	ElementTimeoutMs int                    `toml:"element_timeout_ms"`
	StaleTimeoutMs   int                    `toml:"stale_timeout_ms"`
	Submit           string                 `toml:"submit"`
	AvoidStale       bool                   `toml:"avoid_stale"`
	Form             map[string]interface{} `toml:"form"`
	Find             []*FindConfig          `toml:"find"`
}

// FindConfig searches a collection for the member whose criteria descendant has text
type FindConfig struct {
	Collection string `toml:"collection"`
	Criteria   string `toml:"criteria"`
	Text       string `toml:"text"`
	Click      bool   `toml:"click"`
}

// ElementTimeout to wait for form elements to be present
func (c *Config) ElementTimeout() time.Duration {
	return time.Duration(c.ElementTimeoutMs) * time.Millisecond
}

// StaleTimeout bounds AvoidStaleElement
func (c *Config) StaleTimeout() time.Duration {
	return time.Duration(c.StaleTimeoutMs) * time.Millisecond
}

// LoadConfig decodes the toml file at path
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeConfig(string(data))
}

// DecodeConfig decodes toml data, filling defaults for anything left out
func DecodeConfig(data string) (*Config, error) {
	cfg := &Config{}
	if err := toml.NewDecoder(strings.NewReader(data)).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	cfg.setDefaults()
	return cfg, cfg.validate()
}

func (c *Config) setDefaults() {
	if c.Driver == "" {
		c.Driver = DriverGCD
	}
	if c.ElementTimeoutMs == 0 {
		c.ElementTimeoutMs = 5000
	}
	if c.StaleTimeoutMs == 0 {
		c.StaleTimeoutMs = 3000
	}
	if c.Form == nil {
		c.Form = make(map[string]interface{})
	}
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverGCD, DriverChromedp:
	case DriverSelenium:
		if c.RemoteURL == "" {
			return errors.New("selenium driver requires remote_url")
		}
	default:
		return errors.Errorf("unknown driver %q", c.Driver)
	}
	for i, find := range c.Find {
		if find.Collection == "" || find.Criteria == "" {
			return errors.Errorf("find %d requires collection and criteria", i)
		}
	}
	return nil
}
