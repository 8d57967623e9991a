package config

// ChannelConfig represents the feed channel configuration file
type ChannelConfig struct {
	Channel  ChannelInfo     `yaml:"channel"`
	Settings ChannelSettings `yaml:"settings"`
}

// ChannelInfo contains channel-level feed metadata
type ChannelInfo struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
}

// ChannelSettings contains feed rendering settings
type ChannelSettings struct {
	MaxItems int `yaml:"max_items"`
}
