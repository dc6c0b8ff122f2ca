package handler

import (
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/request"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
)

func Analyze(c *Context) error {
	req := &request.Analyze{}
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

	analysisID, err := client.AnalyzeKeypoint(c.Ctx, keypointID, rule)
	if err != nil {
		return err
	}
	c.Echo("Analysis started. (analysis id: %s)", c.colorID(analysisID))
	ret, err := client.WaitForAnalysis(c.Ctx, analysisID)
	if err != nil {
		return err
	}
	if err := c.report("Analysis", ret); err != nil {
		return err
	}
	if !req.ShowResult {
		return nil
	}
	result, err := ret.Envelope.Value("result")
	if err != nil {
		return err
	}
	return c.JSON(result)
}
