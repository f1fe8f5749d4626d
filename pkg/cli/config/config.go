package config

import (
	"net/url"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/horae/pkg/domain/model"
)

// AppConfig represents the optional application configuration file
type AppConfig struct {
	Timezone string `toml:"timezone"`
	Links    []Link `toml:"link"`
}

// Link represents a statically configured portal link. Entries from the
// config file are merged with the rows of the LINK table at serve time.
type Link struct {
	Label   string `toml:"label"`
	URL     string `toml:"url"`
	Order   int    `toml:"order"`
	Enabled *bool  `toml:"enabled"`
}

// Validate checks if the Link is valid
func (l *Link) Validate() error {
	if l.Label == "" {
		return goerr.Wrap(ErrMissingLabel, "link label is empty")
	}
	if l.URL == "" {
		return goerr.Wrap(ErrMissingURL, "link url is empty", goerr.V(LabelKey, l.Label))
	}
	u, err := url.Parse(l.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return goerr.Wrap(ErrInvalidURL, "link url is not absolute",
			goerr.V(LabelKey, l.Label), goerr.V(URLKey, l.URL))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	labels := make(map[string]bool)
	for i, link := range a.Links {
		if err := link.Validate(); err != nil {
			return goerr.Wrap(err, "invalid link", goerr.V(LinkIndexKey, i))
		}
		if labels[link.Label] {
			return goerr.Wrap(ErrDuplicateLabel, "link label appears twice",
				goerr.V(LabelKey, link.Label), goerr.V(LinkIndexKey, i))
		}
		labels[link.Label] = true
	}

	if a.Timezone != "" {
		if _, err := time.LoadLocation(a.Timezone); err != nil {
			return goerr.Wrap(ErrInvalidTimezone, "timezone is not recognized",
				goerr.V("timezone", a.Timezone))
		}
	}

	return nil
}

// StaticLinks converts the configured entries to domain links. Entries with
// enabled = false are dropped; entries without an enabled key are kept.
func (a *AppConfig) StaticLinks() []model.Link {
	var links []model.Link
	for _, l := range a.Links {
		if l.Enabled != nil && !*l.Enabled {
			continue
		}
		links = append(links, model.Link{
			Label: l.Label,
			URL:   l.URL,
			Order: l.Order,
		})
	}
	return links
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}
