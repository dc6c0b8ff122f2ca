package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/reusedev/anymotion-cli/config"
)

type testEnv struct {
	srv *httptest.Server
	api *gin.RouterGroup
	cfg *config.Config
	dir string
	// files serves downloads outside the authenticated API.
	files *gin.RouterGroup
	stdin string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, k := range []string{config.EnvAPIURL, config.EnvClientID, config.EnvClientSecret} {
		t.Setenv(k, "")
	}
	t.Setenv("ANYMOTION_STDOUT_ISSHOW", "true")

	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.POST("/v1/oauth/accesstokens", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil || body["clientSecret"] != "client-secret" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": "token-1"})
	})
	env := &testEnv{
		api: e.Group("/anymotion/v1", func(c *gin.Context) {
			if c.GetHeader("Authorization") != "Bearer token-1" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
			}
		}),
		files: e.Group("/files"),
		dir:   t.TempDir(),
	}
	env.srv = httptest.NewServer(e)
	t.Cleanup(env.srv.Close)

	cfg, err := config.Load(filepath.Join(env.dir, "config.yml"))
	require.NoError(t, err)
	cfg.SetProfile("default", config.Profile{
		APIURL:       env.srv.URL + "/anymotion/v1/",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Interval:     1,
		Timeout:      1,
	})
	env.cfg = cfg
	return env
}

func (e *testEnv) run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = Run(context.Background(), e.cfg, args, strings.NewReader(e.stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

// lines splits output into non-empty lines.
func lines(s string) []string {
	var ret []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			ret = append(ret, l)
		}
	}
	return ret
}
