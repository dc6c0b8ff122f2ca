package anymotion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/reusedev/anymotion-cli/internal/consts"
)

// maxPages bounds GetList against servers that never stop returning next.
const maxPages = 10000

// GetOne fetches {api}/{endpoint}/{id}/.
func (c *Client) GetOne(ctx context.Context, endpoint consts.Endpoint, id int) (map[string]any, error) {
	env, err := c.request(ctx, http.MethodGet, c.endpointURL(fmt.Sprintf("%s/%d/", endpoint, id)))
	if err != nil {
		return nil, err
	}
	return env.Object()
}

// GetList fetches every page of {api}/{endpoint}/ and concatenates their
// data arrays in page order.
func (c *Client) GetList(ctx context.Context, endpoint consts.Endpoint, params url.Values) ([]map[string]any, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("size", strconv.Itoa(c.pageSize))

	data := make([]map[string]any, 0)
	visited := make(map[string]struct{})
	next := c.endpointURL(endpoint.String() + "/")
	for pages := 0; next != ""; pages++ {
		if pages >= maxPages {
			return nil, fmt.Errorf("%w: more than %d pages from %s", ErrResponse, maxPages, endpoint)
		}
		if _, ok := visited[next]; ok {
			return nil, fmt.Errorf("%w: pagination loops back to %s", ErrResponse, next)
		}
		visited[next] = struct{}{}

		env, err := c.request(ctx, http.MethodGet, next, withParams(query))
		if err != nil {
			return nil, err
		}
		page, err := env.Objects("data")
		if err != nil {
			return nil, err
		}
		data = append(data, page...)
		if next, err = env.OptString("next"); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// StatusParams filters list endpoints by execStatus. An empty status means
// no filter.
func StatusParams(status consts.ExecStatus) url.Values {
	params := url.Values{}
	if status != "" {
		params.Set("execStatus", status.String())
	}
	return params
}

func (c *Client) GetImage(ctx context.Context, id int) (map[string]any, error) {
	return c.GetOne(ctx, consts.Images, id)
}

func (c *Client) GetImages(ctx context.Context) ([]map[string]any, error) {
	return c.GetList(ctx, consts.Images, nil)
}

func (c *Client) GetMovie(ctx context.Context, id int) (map[string]any, error) {
	return c.GetOne(ctx, consts.Movies, id)
}

func (c *Client) GetMovies(ctx context.Context) ([]map[string]any, error) {
	return c.GetList(ctx, consts.Movies, nil)
}

func (c *Client) GetKeypoint(ctx context.Context, id int) (map[string]any, error) {
	return c.GetOne(ctx, consts.Keypoints, id)
}

func (c *Client) GetKeypoints(ctx context.Context, status consts.ExecStatus) ([]map[string]any, error) {
	return c.GetList(ctx, consts.Keypoints, StatusParams(status))
}

func (c *Client) GetDrawing(ctx context.Context, id int) (map[string]any, error) {
	return c.GetOne(ctx, consts.Drawings, id)
}

func (c *Client) GetDrawings(ctx context.Context, status consts.ExecStatus) ([]map[string]any, error) {
	return c.GetList(ctx, consts.Drawings, StatusParams(status))
}

func (c *Client) GetAnalysis(ctx context.Context, id int) (map[string]any, error) {
	return c.GetOne(ctx, consts.Analyses, id)
}

func (c *Client) GetAnalyses(ctx context.Context, status consts.ExecStatus) ([]map[string]any, error) {
	return c.GetList(ctx, consts.Analyses, StatusParams(status))
}
