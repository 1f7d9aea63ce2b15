package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	emoji := true
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8000/player/",
			Timeout: 30,
		},
		Endpoints: EndpointsConfig{
			Status:    "update/",
			PlayPause: "play-pause/",
			Next:      "next/",
			Prev:      "previous/",
			Random:    "random/",
			Repeat:    "repeat/",
		},
		Player: PlayerConfig{
			RefreshRate: 1000,
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
		Watch: WatchConfig{
			Emoji: &emoji,
			MQTT: MQTTConfig{
				Topic:    "vortex/now-playing",
				ClientID: "vortex",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
//
// player.refresh_rate is only defaulted when the key is absent from the file;
// an explicit 0 means manual refresh and is kept.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Server
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = d.Server.BaseURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = d.Server.Timeout
	}

	// Endpoints
	if c.Endpoints.Status == "" {
		c.Endpoints.Status = d.Endpoints.Status
	}
	if c.Endpoints.PlayPause == "" {
		c.Endpoints.PlayPause = d.Endpoints.PlayPause
	}
	if c.Endpoints.Next == "" {
		c.Endpoints.Next = d.Endpoints.Next
	}
	if c.Endpoints.Prev == "" {
		c.Endpoints.Prev = d.Endpoints.Prev
	}
	if c.Endpoints.Random == "" {
		c.Endpoints.Random = d.Endpoints.Random
	}
	if c.Endpoints.Repeat == "" {
		c.Endpoints.Repeat = d.Endpoints.Repeat
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}

	// Watch
	if c.Watch.Emoji == nil {
		c.Watch.Emoji = d.Watch.Emoji
	}
	if c.Watch.MQTT.Topic == "" {
		c.Watch.MQTT.Topic = d.Watch.MQTT.Topic
	}
	if c.Watch.MQTT.ClientID == "" {
		c.Watch.MQTT.ClientID = d.Watch.MQTT.ClientID
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
