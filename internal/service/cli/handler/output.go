package handler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gookit/color"
	jsoniter "github.com/json-iterator/go"
)

// pagerLength is the number of list items from which output goes through
// the pager.
const pagerLength = 10

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func paint(enabled bool, c color.Color, text string) string {
	if !enabled {
		return text
	}
	return c.Sprint(text)
}

func (c *Context) paint(col color.Color, text string) string {
	return paint(c.terminal, col, text)
}

// Echo prints informational text, only for terminals unless
// ANYMOTION_STDOUT_ISSHOW says otherwise.
func (c *Context) Echo(format string, a ...any) {
	if !c.showInfo {
		return
	}
	fmt.Fprintf(c.Stdout, format+"\n", a...)
}

func (c *Context) Success(format string, a ...any) {
	c.Echo("%s: %s", c.paint(color.Green, "Success"), fmt.Sprintf(format, a...))
}

func (c *Context) Warn(format string, a ...any) {
	fmt.Fprintf(c.Stderr, "%s: %s\n", c.paint(color.Yellow, "Warning"), fmt.Sprintf(format, a...))
}

func (c *Context) Error(msg string) {
	fmt.Fprintf(c.Stderr, "%s: %s\n", c.paint(color.Red, "Error"), msg)
}

func (c *Context) colorID(id int) string {
	return c.paint(color.Cyan, fmt.Sprint(id))
}

// JSON prints v indented. Lists long enough go through the pager.
func (c *Context) JSON(v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	body = append(body, '\n')
	if c.showInfo {
		fmt.Fprintln(c.Stdout)
	}
	if items, ok := v.([]map[string]any); ok && len(items) >= pagerLength && c.terminal {
		if err := c.page(body); err == nil {
			return nil
		}
	}
	_, err = c.Stdout.Write(body)
	return err
}

func (c *Context) page(body []byte) error {
	pager := strings.Fields(os.Getenv("PAGER"))
	if len(pager) == 0 {
		pager = []string{"less", "-R"}
	}
	cmd := exec.CommandContext(c.Ctx, pager[0], pager[1:]...)
	cmd.Stdin = bytes.NewReader(body)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// Prompt reads one line. An empty answer keeps def.
func (c *Context) Prompt(label, def, shown string) (string, error) {
	if shown != "" {
		fmt.Fprintf(c.Stdout, "%s [%s]: ", label, shown)
	} else {
		fmt.Fprintf(c.Stdout, "%s: ", label)
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return def, nil
		}
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes/no question that defaults to no.
func (c *Context) Confirm(question string) (bool, error) {
	answer, err := c.Prompt(question+" [y/N]", "", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
