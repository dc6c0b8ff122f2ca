package middleware

import (
	"fmt"

	"github.com/reusedev/anymotion-cli/internal/modules/logs"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler"
)

// Recovery turns a panic in a command into an error.
func Recovery() Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(c *handler.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logs.Logger.Error().Str("command", c.Command).Interface("panic", r).Msg("command panicked")
					err = fmt.Errorf("unexpected failure: %v", r)
				}
			}()
			return next(c)
		}
	}
}
