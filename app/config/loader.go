package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultTitle       = "Saved Links"
	defaultDescription = "Links saved for later reading, republished as RSS."
	defaultMaxItems    = 50
	maxItemsCeiling    = 500
)

// Load reads the channel configuration from path. An empty path yields the
// default configuration, so the file is entirely optional.
func Load(path string) (*ChannelConfig, error) {
	config := &ChannelConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read channel file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	setDefaults(config)

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid channel config %s: %w", path, err)
	}

	return config, nil
}

// setDefaults applies default values to configuration
func setDefaults(config *ChannelConfig) {
	if config.Channel.Title == "" {
		config.Channel.Title = defaultTitle
	}
	if config.Channel.Description == "" {
		config.Channel.Description = defaultDescription
	}
	if config.Settings.MaxItems == 0 {
		config.Settings.MaxItems = defaultMaxItems
	}
}

// validate validates the configuration
func validate(config *ChannelConfig) error {
	if config.Settings.MaxItems < 1 {
		return fmt.Errorf("max items must be positive")
	}
	if config.Settings.MaxItems > maxItemsCeiling {
		return fmt.Errorf("max items must not exceed %d", maxItemsCeiling)
	}

	return nil
}
