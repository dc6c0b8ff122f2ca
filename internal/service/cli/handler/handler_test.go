package handler

import (
	"bytes"
	"context"
	"flag"
	"image/color"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/reusedev/anymotion-cli/config"
	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/modules/observer"
	"github.com/reusedev/anymotion-cli/internal/service/cli/handler/response"
)

func newTestContext(t *testing.T, stdin string, args ...string) (*Context, *bytes.Buffer, *bytes.Buffer) {
	t.Setenv(EnvStdoutIsShow, "true")
	var out, errOut bytes.Buffer
	c := NewContext(context.Background(), &config.Config{}, State{Profile: "default"}, strings.NewReader(stdin), &out, &errOut)
	c.Command = "test"
	c.Args = args
	return c, &out, &errOut
}

func TestParseInterspersed(t *testing.T) {
	c, _, _ := newTestContext(t, "", "7", "--out", "dir", "--force")
	var out string
	var force bool
	args, err := c.Parse(func(fs *flag.FlagSet) {
		fs.StringVar(&out, "out", "", "")
		fs.BoolVar(&force, "force", false, "")
	}, "ID")
	require.NoError(t, err)
	require.Equal(t, []string{"7"}, args)
	require.Equal(t, "dir", out)
	require.True(t, force)
}

func TestParseArgumentCount(t *testing.T) {
	c, _, _ := newTestContext(t, "", "1", "2")
	_, err := c.Parse(nil, "ID")
	require.Equal(t, response.CodeUsage, response.Code(err))
	require.EqualError(t, err, `unexpected argument "2"`)

	c, _, _ = newTestContext(t, "")
	_, err = c.Parse(nil, "ID")
	require.EqualError(t, err, "missing argument ID")

	c, _, errOut := newTestContext(t, "", "--nope")
	_, err = c.Parse(nil)
	require.Equal(t, response.CodeUsage, response.Code(err))
	require.Contains(t, errOut.String(), "flag provided but not defined")

	c, _, _ = newTestContext(t, "", "-h")
	_, err = c.Parse(nil)
	require.Equal(t, response.CodeOK, response.Code(err))
}

func TestID(t *testing.T) {
	c, _, _ := newTestContext(t, "")
	id, err := c.ID("KEYPOINT_ID", "12")
	require.NoError(t, err)
	require.Equal(t, 12, id)
	for _, v := range []string{"0", "-1", "x"} {
		_, err = c.ID("KEYPOINT_ID", v)
		require.Equal(t, response.CodeUsage, response.Code(err), v)
	}
}

func TestEchoRespectsShowSetting(t *testing.T) {
	c, out, _ := newTestContext(t, "")
	c.Success("Drawing is complete.")
	require.Equal(t, "Success: Drawing is complete.\n", out.String())

	t.Setenv(EnvStdoutIsShow, "false")
	var quiet bytes.Buffer
	c = NewContext(context.Background(), &config.Config{}, State{}, strings.NewReader(""), &quiet, &quiet)
	c.Echo("hidden")
	require.NoError(t, c.JSON(map[string]int{"id": 1}))
	require.Equal(t, "{\n  \"id\": 1\n}\n", quiet.String())
}

func TestConfirm(t *testing.T) {
	c, out, _ := newTestContext(t, "yes\n")
	ok, err := c.Confirm("Overwrite?")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Overwrite? [y/N]: ", out.String())

	c, _, _ = newTestContext(t, "")
	ok, err = c.Confirm("Overwrite?")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDownloadPath(t *testing.T) {
	dir := t.TempDir()
	path, err := downloadPath("https://s3.example.com/drawings/a%20b.mp4?X-Amz-Signature=x", "")
	require.NoError(t, err)
	require.Equal(t, "a b.mp4", path)

	path, err = downloadPath("https://s3.example.com/drawings/out.jpg", dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "out.jpg"), path)

	path, err = downloadPath("https://s3.example.com/drawings/out.jpg", filepath.Join(dir, "named.jpg"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "named.jpg"), path)

	_, err = downloadPath("https://s3.example.com/", "")
	require.Error(t, err)
}

func TestTracerMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf, false)
	h := http.Header{}
	h.Set("Authorization", "Bearer abcdefgh")
	tr.Update(consts.EventRequest, &observer.RequestRecord{
		Method: http.MethodPost,
		URL:    "https://api.example.com/v1/oauth/accesstokens",
		Header: h,
		JSON:   map[string]string{"clientId": "id", "clientSecret": "supersecret"},
	})
	tr.Update(consts.EventResponse, &observer.ResponseRecord{
		Proto:      "HTTP/1.1",
		StatusCode: 200,
		Status:     "200 OK",
		Body:       []byte(`{"accessToken":"tokenvalue"}`),
	})
	tr.Update(consts.EventResponse, "ignored")

	s := buf.String()
	require.Contains(t, s, "POST https://api.example.com/v1/oauth/accesstokens\n")
	require.Contains(t, s, "Authorization: Bearer ****efgh\n")
	require.Contains(t, s, `"clientSecret": "*******cret"`)
	require.Contains(t, s, "HTTP/1.1 200 OK\n")
	require.Contains(t, s, `"accessToken": "******alue"`)
	require.NotContains(t, s, "supersecret")
	require.NotContains(t, s, "tokenvalue")
}

func TestThumbnail(t *testing.T) {
	dir := t.TempDir()
	c, out, errOut := newTestContext(t, "")

	movie := filepath.Join(dir, "drawn.mp4")
	require.NoError(t, os.WriteFile(movie, []byte("mp4"), 0o600))
	require.NoError(t, c.thumbnail(movie))
	require.Contains(t, errOut.String(), "Warning: Thumbnails are only made for drawn images.")

	img := filepath.Join(dir, "drawn.png")
	require.NoError(t, imaging.Save(imaging.New(40, 20, color.NRGBA{R: 255, A: 255}), img))
	require.NoError(t, c.thumbnail(img))
	require.Contains(t, out.String(), "Success: Saved the thumbnail to "+filepath.Join(dir, "drawn_thumb.png")+".")

	thumb, err := imaging.Open(filepath.Join(dir, "drawn_thumb.png"))
	require.NoError(t, err)
	require.Equal(t, 10, thumb.Bounds().Dx())
	require.Equal(t, 5, thumb.Bounds().Dy())
}
