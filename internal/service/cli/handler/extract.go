package handler

import (
	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/request"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
)

func Extract(c *Context) error {
	req := &request.Extract{}
	if _, err := c.Parse(req.Bind); err != nil {
		return err
	}
	if err := req.Valid(); err != nil {
		return response.Usage(c.Command, "%s", err)
	}
	client, err := c.Client()
	if err != nil {
		return err
	}

	imageID, movieID := req.ImageID, req.MovieID
	if req.Path != "" {
		ret, err := client.Upload(c.Ctx, req.Path)
		if err != nil {
			return err
		}
		c.Success("Uploaded %s to the cloud storage. (%s id: %s)", req.Path, ret.Type, c.colorID(ret.ID))
		if ret.Type == consts.Movie {
			movieID = ret.ID
		} else {
			imageID = ret.ID
		}
	}

	var keypointID int
	if movieID != 0 {
		keypointID, err = client.ExtractKeypointFromMovie(c.Ctx, movieID)
	} else {
		keypointID, err = client.ExtractKeypointFromImage(c.Ctx, imageID)
	}
	if err != nil {
		return err
	}
	c.Echo("Keypoint extraction started. (keypoint id: %s)", c.colorID(keypointID))

	ret, err := client.WaitForExtraction(c.Ctx, keypointID)
	if err != nil {
		return err
	}
	if err := c.report("Keypoint extraction", ret); err != nil {
		return err
	}
	if !req.WithDrawing {
		return nil
	}
	return c.draw(client, keypointID, nil, request.Drawing{}, true)
}
