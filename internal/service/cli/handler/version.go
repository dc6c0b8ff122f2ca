package handler

import (
	"fmt"

	"github.com/gookit/color"
)

// Version is set at build time with -ldflags "-X ...handler.Version=...".
var Version = "0.1.0"

func PrintVersion(c *Context) error {
	if _, err := c.Parse(nil); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout, "amcli version %s\n", c.paint(color.Cyan, Version))
	return nil
}
