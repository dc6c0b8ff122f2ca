package handler

import (
	"fmt"

	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/request"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
)

func Draw(c *Context) error {
	req := &request.Draw{}
	args, err := c.Parse(req.Bind, "KEYPOINT_ID")
	if err != nil {
		return err
	}
	keypointID, err := c.ID("KEYPOINT_ID", args[0])
	if err != nil {
		return err
	}
	if err := req.Valid(); err != nil {
		return response.Usage(c.Command, "%s", err)
	}
	rule, err := req.LoadRule()
	if err != nil {
		return err
	}
	client, err := c.Client()
	if err != nil {
		return err
	}
	return c.draw(client, keypointID, rule, req.Drawing, !req.NoDownload)
}

// Download saves the file of a finished drawing.
func Download(c *Context) error {
	req := &request.Drawing{}
	args, err := c.Parse(req.Bind, "DRAWING_ID")
	if err != nil {
		return err
	}
	drawingID, err := c.ID("DRAWING_ID", args[0])
	if err != nil {
		return err
	}
	client, err := c.Client()
	if err != nil {
		return err
	}
	drawing, err := client.GetDrawing(c.Ctx, drawingID)
	if err != nil {
		return err
	}
	if fmt.Sprint(drawing["execStatus"]) != consts.Success.String() {
		c.Echo("Status is not SUCCESS.")
		return response.Silent()
	}
	drawingURL, _ := drawing["drawingUrl"].(string)
	if drawingURL == "" {
		return fmt.Errorf("drawing %d has no drawingUrl", drawingID)
	}
	return c.saveDrawing(client, drawingURL, *req)
}
