package handler

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/reusedev/anymotion-cli/config"
	"github.com/reusedev/anymotion-cli/internal/modules/anymotion"
	"github.com/reusedev/anymotion-cli/internal/modules/logs"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
)

const EnvStdoutIsShow = "ANYMOTION_STDOUT_ISSHOW"

type HandlerFunc func(c *Context) error

// State holds the global flags given before the command.
type State struct {
	Profile  string
	Verbose  bool
	Interval int
	Timeout  int
}

type Context struct {
	Ctx     context.Context
	Command string
	Args    []string
	State   State
	Config  *config.Config

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	in       *bufio.Reader
	terminal bool
	showInfo bool
}

func NewContext(ctx context.Context, cfg *config.Config, state State, stdin io.Reader, stdout, stderr io.Writer) *Context {
	terminal := isTerminal(stdout)
	return &Context{
		Ctx:      ctx,
		State:    state,
		Config:   cfg,
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		in:       bufio.NewReader(stdin),
		terminal: terminal,
		showInfo: boolEnv(EnvStdoutIsShow, terminal),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func boolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

// Parse binds the command flags and collects exactly nArgs positional
// arguments. Flags and arguments may be interleaved.
func (c *Context) Parse(bind func(*flag.FlagSet), names ...string) ([]string, error) {
	fs := flag.NewFlagSet(c.Command, flag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	if bind != nil {
		bind(fs)
	}
	fs.Usage = func() {
		usage := "Usage: amcli " + c.Command
		if hasFlags(fs) {
			usage += " [options]"
		}
		for _, name := range names {
			usage += " " + name
		}
		fmt.Fprintln(fs.Output(), usage)
		fs.PrintDefaults()
	}

	var positional []string
	args := c.Args
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, &response.ExitError{Code: response.CodeOK}
			}
			return nil, &response.ExitError{Code: response.CodeUsage}
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	switch {
	case len(positional) < len(names):
		return nil, response.Usage(c.Command, "missing argument %s", names[len(positional)])
	case len(positional) > len(names):
		return nil, response.Usage(c.Command, "unexpected argument %q", positional[len(names)])
	}
	return positional, nil
}

func hasFlags(fs *flag.FlagSet) bool {
	n := 0
	fs.VisitAll(func(*flag.Flag) { n++ })
	return n > 0
}

// ID parses a positional resource id.
func (c *Context) ID(name, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, response.Usage(c.Command, "invalid value %q for %s: must be a positive integer", value, name)
	}
	return id, nil
}

// Client builds an API client from the active profile and the global flags.
func (c *Context) Client() (*anymotion.Client, error) {
	profile := c.Config.Profile(c.State.Profile)
	if c.State.Interval > 0 {
		profile.Interval = c.State.Interval
	}
	if c.State.Timeout > 0 {
		profile.Timeout = c.State.Timeout
	}
	if err := profile.Verify(); err != nil {
		return nil, err
	}
	logger := logs.Logger.With().Str("profile", c.State.Profile).Str("command", c.Command).Logger()
	opts := anymotion.Options{
		ClientID:     profile.ClientID,
		ClientSecret: profile.ClientSecret,
		APIURL:       profile.APIURL,
		Interval:     profile.Interval,
		Timeout:      profile.Timeout,
		Logger:       &logger,
	}
	if c.State.Verbose {
		opts.Observers = append(opts.Observers, NewTracer(c.Stderr, c.terminal))
	}
	return anymotion.New(opts)
}
