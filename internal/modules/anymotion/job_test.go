package anymotion

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestStartJobs(t *testing.T) {
	f := newFakeAPI(t)
	var bodies []map[string]any
	record := func(id int) gin.HandlerFunc {
		return func(c *gin.Context) {
			var body map[string]any
			require.NoError(t, c.ShouldBindJSON(&body))
			bodies = append(bodies, body)
			c.JSON(http.StatusCreated, gin.H{"id": id})
		}
	}
	f.API.POST("/keypoints/", record(11))
	f.API.POST("/drawings/", record(22))
	f.API.POST("/analyses/", record(33))
	client := f.Client(t, 1, 10)
	ctx := context.Background()

	id, err := client.ExtractKeypointFromImage(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 11, id)
	_, err = client.ExtractKeypointFromMovie(ctx, 2)
	require.NoError(t, err)

	id, err = client.DrawKeypoint(ctx, 11, nil)
	require.NoError(t, err)
	require.Equal(t, 22, id)
	rule := []any{map[string]any{"drawingType": "stickPicture", "pattern": "all"}}
	_, err = client.DrawKeypoint(ctx, 11, rule)
	require.NoError(t, err)

	id, err = client.AnalyzeKeypoint(ctx, 11, map[string]any{"analysisType": "vectorAngle"})
	require.NoError(t, err)
	require.Equal(t, 33, id)

	require.Equal(t, []map[string]any{
		{"image_id": float64(1)},
		{"movie_id": float64(2)},
		{"keypoint_id": float64(11)},
		{"keypoint_id": float64(11), "rule": []any{map[string]any{"drawingType": "stickPicture", "pattern": "all"}}},
		{"keypoint_id": float64(11), "rule": map[string]any{"analysisType": "vectorAngle"}},
	}, bodies)
	require.Equal(t, "application/json", f.Header(http.MethodPost, "/anymotion/v1/analyses/").Get("Content-Type"))
}

func TestStartJobMissingID(t *testing.T) {
	f := newFakeAPI(t)
	f.API.POST("/keypoints/", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"detail": "accepted"})
	})
	client := f.Client(t, 1, 10)

	_, err := client.ExtractKeypointFromImage(context.Background(), 1)
	require.ErrorIs(t, err, ErrResponse)
}

func TestStartJobFractionalID(t *testing.T) {
	f := newFakeAPI(t)
	f.API.POST("/drawings/", func(c *gin.Context) {
		c.Data(http.StatusCreated, "application/json", []byte(`{"id": 1.5}`))
	})
	client := f.Client(t, 1, 10)

	_, err := client.DrawKeypoint(context.Background(), 1, nil)
	require.ErrorIs(t, err, ErrResponse)
}

func TestWaitForDrawing(t *testing.T) {
	f := newFakeAPI(t)
	polls := 0
	f.API.GET("/drawings/:id/", func(c *gin.Context) {
		polls++
		if polls < 3 {
			c.JSON(http.StatusOK, gin.H{"id": paramID(c), "execStatus": "PROCESSING", "drawingUrl": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": paramID(c), "execStatus": "SUCCESS", "drawingUrl": f.URL + "/files/drawing.mp4"})
	})
	client := f.Client(t, 5, 600)
	var slept int
	client.poller.sleep = func(ctx context.Context, d time.Duration) error {
		slept++
		return nil
	}

	ret, drawingURL, err := client.WaitForDrawing(context.Background(), 8)
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, ret.Outcome)
	require.Equal(t, 3, ret.Attempts)
	require.Equal(t, 2, slept)
	require.Equal(t, f.URL+"/files/drawing.mp4", drawingURL)
	require.Equal(t, 3, f.Hits(http.MethodGet, "/anymotion/v1/drawings/8/"))
}

func TestWaitForExtractionFailure(t *testing.T) {
	f := newFakeAPI(t)
	f.API.GET("/keypoints/:id/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": paramID(c), "execStatus": "FAILURE", "failureDetail": "No person detected."})
	})
	client := f.Client(t, 1, 10)

	ret, err := client.WaitForExtraction(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, OutcomeFailure, ret.Outcome)
	require.Equal(t, "No person detected.", ret.FailureDetail())
	require.Equal(t, 1, f.Hits(http.MethodGet, "/anymotion/v1/keypoints/2/"))
}

func TestWaitForAnalysisTimeout(t *testing.T) {
	f := newFakeAPI(t)
	f.API.GET("/analyses/:id/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": paramID(c), "execStatus": "PROCESSING"})
	})
	client := f.Client(t, 2, 7)

	ret, err := client.WaitForAnalysis(context.Background(), 6)
	require.NoError(t, err)
	require.Equal(t, OutcomeTimeout, ret.Outcome)
	require.Equal(t, 3, f.Hits(http.MethodGet, "/anymotion/v1/analyses/6/"))
}

func TestWaitForDrawingFailureHasNoURL(t *testing.T) {
	f := newFakeAPI(t)
	f.API.GET("/drawings/:id/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"execStatus": "FAILURE"})
	})
	client := f.Client(t, 1, 10)

	ret, drawingURL, err := client.WaitForDrawing(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, OutcomeFailure, ret.Outcome)
	require.Empty(t, drawingURL)
	require.Empty(t, ret.FailureDetail())
}

func TestDownload(t *testing.T) {
	f := newFakeAPI(t)
	f.Engine.GET("/files/:name", func(c *gin.Context) {
		if c.Param("name") == "missing.mp4" {
			c.String(http.StatusNotFound, "NoSuchKey")
			return
		}
		c.Data(http.StatusOK, "video/mp4", []byte("drawing-bytes"))
	})
	client := f.Client(t, 1, 10)
	dir := t.TempDir()

	out := filepath.Join(dir, "nested", "drawing.mp4")
	require.NoError(t, client.Download(context.Background(), f.URL+"/files/drawing.mp4?sig=1", out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte("drawing-bytes"), data)
	require.Empty(t, f.Header(http.MethodGet, "/files/drawing.mp4").Get("Authorization"))
	require.Zero(t, f.TokenCalls())

	missing := filepath.Join(dir, "missing.mp4")
	err = client.Download(context.Background(), f.URL+"/files/missing.mp4", missing)
	require.ErrorIs(t, err, ErrRequest)
	_, statErr := os.Stat(missing)
	require.True(t, os.IsNotExist(statErr))
}
