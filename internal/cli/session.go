package cli

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/app"
	"github.com/tessro/vortex/internal/ui"
)

const stopTimeout = 5 * time.Second

// oneShot builds a session with the refresh loop disabled, for commands
// that poll or dispatch once and print the result.
func oneShot() (*app.App, *ui.Screen, *zap.Logger, error) {
	logger, err := newLogger(!verbose)
	if err != nil {
		return nil, nil, nil, err
	}

	once := *cfg
	once.Player.RefreshRate = 0

	screen := ui.NewScreen()
	session, err := app.New(&once, screen, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return session, screen, logger, nil
}

func stopSession(session *app.App, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := session.Stop(ctx); err != nil {
		logger.Warn("failed to stop session", zap.Error(err))
	}
}
