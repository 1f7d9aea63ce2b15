package config

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `toml:"server" json:"server"`
	Endpoints EndpointsConfig `toml:"endpoints" json:"endpoints"`
	Player    PlayerConfig    `toml:"player" json:"player"`
	TUI       TUIConfig       `toml:"tui" json:"tui"`
	Watch     WatchConfig     `toml:"watch" json:"watch"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// ServerConfig holds the player service location.
type ServerConfig struct {
	BaseURL string `toml:"base_url" json:"base_url"`
	Timeout int    `toml:"timeout" json:"timeout"`
}

// EndpointsConfig maps the status call and each command to a URL. Relative
// values are resolved against the server base URL.
type EndpointsConfig struct {
	Status    string `toml:"status" json:"status"`
	PlayPause string `toml:"play_pause" json:"play_pause"`
	Next      string `toml:"next" json:"next"`
	Prev      string `toml:"prev" json:"prev"`
	Random    string `toml:"random" json:"random"`
	Repeat    string `toml:"repeat" json:"repeat"`
}

// PlayerConfig holds synchronization settings.
type PlayerConfig struct {
	// RefreshRate is the poll interval in milliseconds. Zero disables
	// periodic polling.
	RefreshRate int `toml:"refresh_rate" json:"refresh_rate"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `toml:"theme" json:"theme"`
}

// WatchConfig holds settings for the headless watch mode.
type WatchConfig struct {
	Notify    bool       `toml:"notify" json:"notify"`
	PIDFile   string     `toml:"pidfile" json:"pidfile"`
	Emoji     *bool      `toml:"emoji" json:"emoji,omitempty"`
	Timestamp bool       `toml:"timestamp" json:"timestamp"`
	Format    string     `toml:"format" json:"format"`
	MQTT      MQTTConfig `toml:"mqtt" json:"mqtt"`
}

// MQTTConfig holds the broker used to publish now-playing state.
type MQTTConfig struct {
	Broker   string `toml:"broker" json:"broker"`
	Topic    string `toml:"topic" json:"topic"`
	ClientID string `toml:"client_id" json:"client_id"`
	Username string `toml:"username" json:"username"`
	Password string `toml:"password" json:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
