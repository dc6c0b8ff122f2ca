package anymotion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/modules/observer"
	"github.com/reusedev/anymotion-cli/internal/modules/storage/local"
)

func (c *Client) ExtractKeypointFromImage(ctx context.Context, imageID int) (int, error) {
	return c.create(ctx, consts.Keypoints, map[string]any{"image_id": imageID})
}

func (c *Client) ExtractKeypointFromMovie(ctx context.Context, movieID int) (int, error) {
	return c.create(ctx, consts.Keypoints, map[string]any{"movie_id": movieID})
}

// DrawKeypoint starts a drawing. A nil rule uses the server default.
func (c *Client) DrawKeypoint(ctx context.Context, keypointID int, rule any) (int, error) {
	body := map[string]any{"keypoint_id": keypointID}
	if rule != nil {
		body["rule"] = rule
	}
	return c.create(ctx, consts.Drawings, body)
}

func (c *Client) AnalyzeKeypoint(ctx context.Context, keypointID int, rule any) (int, error) {
	body := map[string]any{"keypoint_id": keypointID}
	if rule != nil {
		body["rule"] = rule
	}
	return c.create(ctx, consts.Analyses, body)
}

func (c *Client) create(ctx context.Context, endpoint consts.Endpoint, body map[string]any) (int, error) {
	env, err := c.request(ctx, http.MethodPost, c.endpointURL(endpoint.String()+"/"), withJSON(body))
	if err != nil {
		return 0, err
	}
	return env.Int("id")
}

func (c *Client) wait(ctx context.Context, endpoint consts.Endpoint, id int) (PollResult, error) {
	jobURL := c.endpointURL(fmt.Sprintf("%s/%d/", endpoint, id))
	ret, err := c.poller.Poll(ctx, jobURL)
	if err != nil {
		return PollResult{}, err
	}
	c.logger.Debug().
		Str("endpoint", endpoint.String()).
		Int("id", id).
		Str("outcome", ret.Outcome.String()).
		Int("attempts", ret.Attempts).
		Msg("job finished waiting")
	return ret, nil
}

func (c *Client) WaitForExtraction(ctx context.Context, keypointID int) (PollResult, error) {
	return c.wait(ctx, consts.Keypoints, keypointID)
}

func (c *Client) WaitForAnalysis(ctx context.Context, analysisID int) (PollResult, error) {
	return c.wait(ctx, consts.Analyses, analysisID)
}

// WaitForDrawing also returns drawingUrl when the drawing succeeded.
func (c *Client) WaitForDrawing(ctx context.Context, drawingID int) (PollResult, string, error) {
	ret, err := c.wait(ctx, consts.Drawings, drawingID)
	if err != nil {
		return PollResult{}, "", err
	}
	if ret.Outcome != OutcomeSuccess {
		return ret, "", nil
	}
	drawingURL, err := ret.Envelope.String("drawingUrl")
	if err != nil {
		return PollResult{}, "", err
	}
	return ret, drawingURL, nil
}

// Download GETs rawURL without credentials and stores the body at path.
func (c *Client) Download(ctx context.Context, rawURL, path string) error {
	resp, err := c.send(ctx, http.MethodGet, rawURL, &requestOptions{headers: http.Header{}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.observers.Notify(consts.EventResponse, &observer.ResponseRecord{
		Proto:      resp.Proto,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
	})
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Method: http.MethodGet, URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return local.SaveFile(resp.Body, path)
}
