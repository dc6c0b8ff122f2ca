package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/reusedev/anymotion-cli/config"
	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
	"github.com/reusedev/anymotion-cli/internal/service/cli/middleware"
)

type route struct {
	path    string
	summary string
	handler handler.HandlerFunc
}

type Router struct {
	routes      []route
	middlewares []middleware.Middleware
}

func (r *Router) Use(m ...middleware.Middleware) {
	r.middlewares = append(r.middlewares, m...)
}

func (r *Router) Handle(path, summary string, h handler.HandlerFunc) {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	r.routes = append(r.routes, route{path: path, summary: summary, handler: h})
}

type Group struct {
	router *Router
	prefix string
}

func (r *Router) Group(prefix string) *Group {
	return &Group{router: r, prefix: prefix}
}

func (g *Group) Handle(path, summary string, h handler.HandlerFunc) {
	g.router.Handle(g.prefix+" "+path, summary, h)
}

// match picks the longest route matching the leading words of args.
func (r *Router) match(args []string) (route, []string, bool) {
	for n := min(2, len(args)); n > 0; n-- {
		path := strings.Join(args[:n], " ")
		for _, rt := range r.routes {
			if rt.path == path {
				return rt, args[n:], true
			}
		}
	}
	return route{}, nil, false
}

func (r *Router) subcommands(group string) []string {
	var subs []string
	for _, rt := range r.routes {
		if sub, ok := strings.CutPrefix(rt.path, group+" "); ok {
			subs = append(subs, sub)
		}
	}
	return subs
}

func (r *Router) usage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "Command Line Interface for AnyMotion API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: amcli [global options] COMMAND [options] [ARGS]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	width := 0
	for _, rt := range r.routes {
		width = max(width, len(rt.path))
	}
	for _, rt := range r.routes {
		fmt.Fprintf(w, "  %-*s  %s\n", width, rt.path, rt.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global options:")
	global.SetOutput(w)
	global.PrintDefaults()
}

func initRouter(r *Router) {
	r.Use(middleware.Recovery(), middleware.CommandLogger())
	configure := r.Group("configure")
	{
		r.Handle("configure", "Configure the AnyMotion API URL and credentials.", handler.Configure)
		configure.Handle("list", "Show the configured profiles.", handler.ConfigureList)
	}
	r.Handle("upload", "Upload a local image or movie.", handler.Upload)
	r.Handle("extract", "Extract keypoints from an image or movie.", handler.Extract)
	r.Handle("draw", "Draw the extracted keypoints.", handler.Draw)
	r.Handle("analyze", "Analyze the extracted keypoints.", handler.Analyze)
	r.Handle("download", "Download a drawn image or movie.", handler.Download)

	image := r.Group("image")
	{
		image.Handle("list", "Show the uploaded images.", handler.ImageList)
		image.Handle("show", "Show an uploaded image.", handler.ImageShow)
	}
	movie := r.Group("movie")
	{
		movie.Handle("list", "Show the uploaded movies.", handler.MovieList)
		movie.Handle("show", "Show an uploaded movie.", handler.MovieShow)
	}
	keypoint := r.Group("keypoint")
	{
		keypoint.Handle("list", "Show the keypoint extractions.", handler.KeypointList)
		keypoint.Handle("show", "Show the extracted keypoints.", handler.KeypointShow)
	}
	drawing := r.Group("drawing")
	{
		drawing.Handle("list", "Show the drawings.", handler.DrawingList)
		drawing.Handle("show", "Show a drawing.", handler.DrawingShow)
	}
	analysis := r.Group("analysis")
	{
		analysis.Handle("list", "Show the analyses.", handler.AnalysisList)
		analysis.Handle("show", "Show the result of an analysis.", handler.AnalysisShow)
	}
	r.Handle("version", "Show the version.", handler.PrintVersion)
}

// Run executes one command line and returns the process exit code.
func Run(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := &Router{}
	initRouter(r)

	state := handler.State{}
	global := flag.NewFlagSet("amcli", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.StringVar(&state.Profile, "profile", consts.DefaultProfile, "name of a profile in the config file")
	global.BoolVar(&state.Verbose, "verbose", false, "print every HTTP request and response to stderr")
	global.IntVar(&state.Interval, "interval", 0, "seconds between status checks (overrides the profile)")
	global.IntVar(&state.Timeout, "timeout", 0, "seconds to wait for a job (overrides the profile)")
	global.Usage = func() { r.usage(stderr, global) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return response.CodeOK
		}
		return response.CodeUsage
	}

	c := handler.NewContext(ctx, cfg, state, stdin, stdout, stderr)
	rest := global.Args()
	if len(rest) == 0 {
		r.usage(stderr, global)
		return response.CodeUsage
	}
	rt, cmdArgs, ok := r.match(rest)
	if !ok {
		if subs := r.subcommands(rest[0]); len(subs) > 0 {
			c.Error(fmt.Sprintf("missing command for %s, expected one of: %s", rest[0], strings.Join(subs, ", ")))
		} else {
			c.Error(fmt.Sprintf("no such command %q", rest[0]))
		}
		fmt.Fprintln(stderr, `Try "amcli -h" for help.`)
		return response.CodeUsage
	}
	c.Command = rt.path
	c.Args = cmdArgs

	err := rt.handler(c)
	code := response.Code(err)
	if err == nil {
		return code
	}
	if msg := response.Message(err); msg != "" {
		c.Error(msg)
		var usage *response.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintf(stderr, "Try \"amcli %s -h\" for help.\n", usage.Command)
		}
	}
	return code
}

// Commands lists the registered command paths.
func Commands() []string {
	r := &Router{}
	initRouter(r)
	paths := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		paths = append(paths, rt.path)
	}
	slices.Sort(paths)
	return paths
}
