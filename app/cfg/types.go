package cfg

type Cfg struct {
	// HTTP configuration
	Port    string
	BaseUrl string

	// Database configuration
	DBPath string

	// Application configuration
	ChannelFile string
	Timezone    string
	Debug       bool
	Version     string
}
