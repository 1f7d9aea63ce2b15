package config

import (
	"fmt"
	"net/url"

	"github.com/tessro/vortex/internal/core"
)

// Endpoints holds absolute URLs for the status call and every command.
type Endpoints struct {
	Status   string
	Commands map[core.Command]string
}

// URL returns the endpoint for a command.
func (e Endpoints) URL(cmd core.Command) (string, bool) {
	u, ok := e.Commands[cmd]
	return u, ok
}

// ResolveEndpoints resolves the configured endpoints against the server base URL.
func (c *Config) ResolveEndpoints() (Endpoints, error) {
	base, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return Endpoints{}, fmt.Errorf("invalid base_url: %w", err)
	}

	resolve := func(name, ref string) (string, error) {
		u, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("invalid %s endpoint: %w", name, err)
		}
		resolved := base.ResolveReference(u)
		if resolved.Scheme == "" || resolved.Host == "" {
			return "", fmt.Errorf("%s endpoint %q does not resolve to an absolute URL", name, ref)
		}
		return resolved.String(), nil
	}

	status, err := resolve("status", c.Endpoints.Status)
	if err != nil {
		return Endpoints{}, err
	}

	refs := map[core.Command]string{
		core.CommandPlayPause:    c.Endpoints.PlayPause,
		core.CommandNext:         c.Endpoints.Next,
		core.CommandPrev:         c.Endpoints.Prev,
		core.CommandToggleRandom: c.Endpoints.Random,
		core.CommandToggleRepeat: c.Endpoints.Repeat,
	}

	commands := make(map[core.Command]string, len(refs))
	for cmd, ref := range refs {
		u, err := resolve(string(cmd), ref)
		if err != nil {
			return Endpoints{}, err
		}
		commands[cmd] = u
	}

	return Endpoints{Status: status, Commands: commands}, nil
}
