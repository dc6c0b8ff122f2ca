package handler

import (
	"fmt"

	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/request"
)

func Configure(c *Context) error {
	req := &request.Configure{}
	if _, err := c.Parse(req.Bind); err != nil {
		return err
	}
	name := req.Profile
	if name == "" {
		name = c.State.Profile
	}

	p := c.Config.Stored(name)
	if p.APIURL == "" {
		p.APIURL = consts.DefaultAPIURL
	}
	var err error
	if p.APIURL, err = c.Prompt("AnyMotion API URL", p.APIURL, p.APIURL); err != nil {
		return err
	}
	if p.ClientID, err = c.Prompt("AnyMotion Client ID", p.ClientID, p.ClientID); err != nil {
		return err
	}
	if p.ClientSecret, err = c.Prompt("AnyMotion Client Secret", p.ClientSecret, p.MaskedSecret()); err != nil {
		return err
	}
	if p.APIURL == consts.DefaultAPIURL {
		p.APIURL = ""
	}
	c.Config.SetProfile(name, p)
	return c.Config.Save()
}

func ConfigureList(c *Context) error {
	if _, err := c.Parse(nil); err != nil {
		return err
	}
	for i, name := range c.Config.ProfileNames() {
		if i > 0 {
			fmt.Fprintln(c.Stdout)
		}
		p := c.Config.Profile(name)
		fmt.Fprintf(c.Stdout, "[%s]\n", name)
		fmt.Fprintf(c.Stdout, "api_url = %s\n", p.APIURL)
		fmt.Fprintf(c.Stdout, "client_id = %s\n", p.ClientID)
		fmt.Fprintf(c.Stdout, "client_secret = %s\n", p.MaskedSecret())
		fmt.Fprintf(c.Stdout, "interval = %d\n", p.Interval)
		fmt.Fprintf(c.Stdout, "timeout = %d\n", p.Timeout)
	}
	return nil
}
