package request

import (
	"flag"
	"fmt"
	"strings"

	"github.com/reusedev/anymotion-cli/internal/consts"
)

type List struct {
	Status string
}

func (l *List) Bind(fs *flag.FlagSet) {
	fs.StringVar(&l.Status, "status", "", "only list jobs in this state (SUCCESS, FAILURE, PROCESSING or UNPROCESSED)")
}

func (l *List) Valid() error {
	if l.Status != "" && !l.ExecStatus().Valid() {
		return fmt.Errorf("invalid status %q", l.Status)
	}
	return nil
}

func (l *List) ExecStatus() consts.ExecStatus {
	return consts.ExecStatus(strings.ToUpper(l.Status))
}

type Configure struct {
	Profile string
}

func (c *Configure) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Profile, "profile", "", "name of the profile to configure")
}
