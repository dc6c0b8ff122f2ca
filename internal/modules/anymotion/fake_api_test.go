package anymotion

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "client-id"
	testClientSecret = "client-secret"
	testToken        = "token-1"
)

// fakeAPI is an in-process AnyMotion server. Routes under /anymotion/v1
// require the bearer token issued by /v1/oauth/accesstokens.
type fakeAPI struct {
	*httptest.Server
	Engine *gin.Engine
	API    *gin.RouterGroup

	mu         sync.Mutex
	tokenCalls int
	hits       map[string]int
	headers    map[string]http.Header
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := &fakeAPI{
		Engine:  gin.New(),
		hits:    map[string]int{},
		headers: map[string]http.Header{},
	}
	f.Engine.Use(func(c *gin.Context) {
		key := c.Request.Method + " " + c.Request.URL.Path
		f.mu.Lock()
		f.hits[key]++
		f.headers[key] = c.Request.Header.Clone()
		f.mu.Unlock()
		c.Next()
	})
	f.Engine.POST("/v1/oauth/accesstokens", func(c *gin.Context) {
		f.mu.Lock()
		f.tokenCalls++
		f.mu.Unlock()
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if req.GrantType != "client_credentials" || req.ClientID != testClientID || req.ClientSecret != testClientSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid client"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": testToken, "tokenType": "bearer"})
	})
	f.API = f.Engine.Group("/anymotion/v1", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+testToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
			return
		}
		c.Next()
	})
	f.Server = httptest.NewServer(f.Engine)
	t.Cleanup(f.Server.Close)
	return f
}

func (f *fakeAPI) APIURL() string {
	return f.URL + "/anymotion/v1/"
}

func (f *fakeAPI) Hits(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

func (f *fakeAPI) Header(method, path string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers[method+" "+path]
}

func (f *fakeAPI) TokenCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCalls
}

// Client returns a client for the fake server that never sleeps between
// polls.
func (f *fakeAPI) Client(t *testing.T, interval, timeout int) *Client {
	t.Helper()
	c, err := New(Options{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		APIURL:       f.APIURL(),
		Interval:     interval,
		Timeout:      timeout,
	})
	require.NoError(t, err)
	c.poller.sleep = noSleep
	return c
}

func paramID(c *gin.Context) int {
	id, _ := strconv.Atoi(c.Param("id"))
	return id
}
