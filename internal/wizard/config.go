package wizard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tessro/vortex/internal/config"
)

// Answers are the values collected by the config form.
type Answers struct {
	BaseURL     string
	RefreshRate string
	Theme       string
	Notify      bool
	MQTTBroker  string
}

// AnswersFrom seeds the form with an existing config.
func AnswersFrom(cfg *config.Config) Answers {
	return Answers{
		BaseURL:     cfg.Server.BaseURL,
		RefreshRate: strconv.Itoa(cfg.Player.RefreshRate),
		Theme:       cfg.TUI.Theme,
		Notify:      cfg.Watch.Notify,
		MQTTBroker:  cfg.Watch.MQTT.Broker,
	}
}

// Apply copies the answers onto a copy of cfg and validates the result.
func (a Answers) Apply(cfg *config.Config) (*config.Config, error) {
	out := *cfg
	out.Server.BaseURL = strings.TrimSpace(a.BaseURL)
	rate, err := strconv.Atoi(strings.TrimSpace(a.RefreshRate))
	if err != nil {
		return nil, fmt.Errorf("refresh rate must be a number of milliseconds: %w", err)
	}
	out.Player.RefreshRate = rate
	out.TUI.Theme = a.Theme
	out.Watch.Notify = a.Notify
	out.Watch.MQTT.Broker = strings.TrimSpace(a.MQTTBroker)

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http or https URL")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func validateRefreshRate(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number of milliseconds")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// RunConfigForm asks for the common settings, starting from base.
func RunConfigForm(base *config.Config) (*config.Config, error) {
	answers := AnswersFrom(base)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Player URL").
				Description("Base URL of the player service").
				Value(&answers.BaseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Refresh rate (ms)").
				Description("0 disables periodic refresh").
				Value(&answers.RefreshRate).
				Validate(validateRefreshRate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dashboard theme").
				Options(huh.NewOptions("auto", "dark", "light")...).
				Value(&answers.Theme),
			huh.NewConfirm().
				Title("Desktop notifications in watch mode?").
				Value(&answers.Notify),
			huh.NewInput().
				Title("MQTT broker").
				Description("tcp://host:1883, leave empty to disable").
				Value(&answers.MQTTBroker),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("config setup cancelled: %w", err)
	}
	return answers.Apply(base)
}
