package watch

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Stream prints each event and hands it to every sink until events closes
// or ctx is done. Sink failures are logged and do not end the stream.
func Stream(ctx context.Context, events <-chan Event, out io.Writer, f *Formatter, sinks []Sink, logger *zap.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintln(out, f.Format(e)); err != nil {
				return fmt.Errorf("failed to write event: %w", err)
			}
			for _, sink := range sinks {
				if err := sink.Handle(e); err != nil {
					logger.Warn("sink failed", zap.Stringer("type", e.Type), zap.Error(err))
				}
			}
		}
	}
}
