package handler

import (
	"context"
	"fmt"

	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/modules/anymotion"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/request"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
)

type getOneFunc func(client *anymotion.Client, ctx context.Context, id int) (map[string]any, error)

func show(c *Context, name string, get getOneFunc, field string) error {
	args, err := c.Parse(nil, name)
	if err != nil {
		return err
	}
	id, err := c.ID(name, args[0])
	if err != nil {
		return err
	}
	client, err := c.Client()
	if err != nil {
		return err
	}
	data, err := get(client, c.Ctx, id)
	if err != nil {
		return err
	}
	if field == "" {
		return c.JSON(data)
	}
	if fmt.Sprint(data["execStatus"]) != consts.Success.String() {
		c.Echo("Status is not SUCCESS.")
		return nil
	}
	return c.JSON(data[field])
}

func list(c *Context, endpoint consts.Endpoint, withStatus bool) error {
	req := &request.List{}
	bind := req.Bind
	if !withStatus {
		bind = nil
	}
	if _, err := c.Parse(bind); err != nil {
		return err
	}
	if err := req.Valid(); err != nil {
		return response.Usage(c.Command, "%s", err)
	}
	client, err := c.Client()
	if err != nil {
		return err
	}
	data, err := client.GetList(c.Ctx, endpoint, anymotion.StatusParams(req.ExecStatus()))
	if err != nil {
		return err
	}
	return c.JSON(data)
}

func ImageList(c *Context) error {
	return list(c, consts.Images, false)
}

func ImageShow(c *Context) error {
	return show(c, "IMAGE_ID", (*anymotion.Client).GetImage, "")
}

func MovieList(c *Context) error {
	return list(c, consts.Movies, false)
}

func MovieShow(c *Context) error {
	return show(c, "MOVIE_ID", (*anymotion.Client).GetMovie, "")
}

func KeypointList(c *Context) error {
	return list(c, consts.Keypoints, true)
}

// KeypointShow prints the extracted keypoints of a successful extraction.
func KeypointShow(c *Context) error {
	return show(c, "KEYPOINT_ID", (*anymotion.Client).GetKeypoint, "keypoint")
}

func DrawingList(c *Context) error {
	return list(c, consts.Drawings, true)
}

func DrawingShow(c *Context) error {
	return show(c, "DRAWING_ID", (*anymotion.Client).GetDrawing, "")
}

func AnalysisList(c *Context) error {
	return list(c, consts.Analyses, true)
}

// AnalysisShow prints the result of a successful analysis.
func AnalysisShow(c *Context) error {
	return show(c, "ANALYSIS_ID", (*anymotion.Client).GetAnalysis, "result")
}
