package handler

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/reusedev/anymotion-cli/internal/modules/anymotion"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/request"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
	"github.com/reusedev/anymotion-cli/tools"
)

const thumbnailRatio = 0.25

// report prints the outcome of a finished wait. Anything but success fails
// the command without a further error message.
func (c *Context) report(job string, ret anymotion.PollResult) error {
	switch ret.Outcome {
	case anymotion.OutcomeSuccess:
		c.Success("%s is complete.", job)
		return nil
	case anymotion.OutcomeTimeout:
		c.Echo("%s is timed out.", job)
	default:
		if detail := ret.FailureDetail(); detail != "" {
			c.Echo("%s failed: %s", job, detail)
		} else {
			c.Echo("%s failed.", job)
		}
	}
	return response.Silent()
}

func (c *Context) draw(client *anymotion.Client, keypointID int, rule any, opts request.Drawing, download bool) error {
	drawingID, err := client.DrawKeypoint(c.Ctx, keypointID, rule)
	if err != nil {
		return err
	}
	c.Echo("Drawing started. (drawing id: %s)", c.colorID(drawingID))
	ret, drawingURL, err := client.WaitForDrawing(c.Ctx, drawingID)
	if err != nil {
		return err
	}
	if err := c.report("Drawing", ret); err != nil {
		return err
	}
	if !download {
		return nil
	}
	return c.saveDrawing(client, drawingURL, opts)
}

// saveDrawing downloads drawingURL to opts.Out, or to the current directory
// under the file name of the URL.
func (c *Context) saveDrawing(client *anymotion.Client, drawingURL string, opts request.Drawing) error {
	path, err := downloadPath(drawingURL, opts.Out)
	if err != nil {
		return err
	}
	if tools.Exists(path) && !opts.Force {
		ok, err := c.Confirm("File already exists. Do you want to overwrite?")
		if err != nil {
			return err
		}
		if !ok {
			c.Echo("Skip download. To download, please use the --force option.")
			return nil
		}
	}
	if err := client.Download(c.Ctx, drawingURL, path); err != nil {
		return err
	}
	c.Success("Downloaded the file to %s.", path)

	if !opts.Thumbnail {
		return nil
	}
	return c.thumbnail(path)
}

func (c *Context) thumbnail(path string) error {
	thumb, err := tools.ThumbnailFile(path, thumbnailRatio)
	switch {
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		c.Warn("Thumbnails are only made for drawn images.")
		return nil
	case err != nil:
		return err
	}
	c.Success("Saved the thumbnail to %s.", thumb)
	return nil
}

func downloadPath(drawingURL, out string) (string, error) {
	name := tools.FileNameFromURL(drawingURL)
	if out == "" {
		if name == "" {
			return "", errors.New("cannot name the drawn file, use --out")
		}
		return name, nil
	}
	if tools.IsDir(out) || os.IsPathSeparator(out[len(out)-1]) {
		if name == "" {
			return "", errors.New("cannot name the drawn file, use --out with a file path")
		}
		return filepath.Join(out, name), nil
	}
	return out, nil
}
