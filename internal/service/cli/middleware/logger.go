package middleware

import (
	"time"

	"github.com/reusedev/anymotion-cli/internal/modules/logs"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
)

type Middleware func(next handler.HandlerFunc) handler.HandlerFunc

func CommandLogger() Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(c *handler.Context) error {
			start := time.Now()
			err := next(c)
			event := logs.Logger.Info()
			if response.Code(err) != response.CodeOK {
				event = logs.Logger.Warn().Err(err)
			}
			event.Str("command", c.Command).
				Str("profile", c.State.Profile).
				Int("exit_code", response.Code(err)).
				Dur("duration", time.Since(start)).
				Msg("command log")
			return err
		}
	}
}
