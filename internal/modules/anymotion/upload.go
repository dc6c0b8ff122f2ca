package anymotion

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/reusedev/anymotion-cli/internal/consts"
)

type UploadResult struct {
	ID   int
	Type consts.MediaType
}

type registerRequest struct {
	OriginKey  string `json:"origin_key"`
	ContentMD5 string `json:"content_md5"`
}

// Classify decides the media type from the file extension alone.
func Classify(path string) (consts.MediaType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case slices.Contains(consts.MovieSuffixes, ext):
		return consts.Movie, nil
	case slices.Contains(consts.ImageSuffixes, ext):
		return consts.Image, nil
	}
	allowed := append(append([]string{}, consts.MovieSuffixes...), consts.ImageSuffixes...)
	return "", fmt.Errorf("%w: the extension of the file %s must be %s or %s",
		ErrFileType, path, strings.Join(allowed[:len(allowed)-1], ", "), allowed[len(allowed)-1])
}

// Checksum is the base64 encoded MD5 digest of the file content.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// Upload registers the file as an image or movie and PUTs its bytes to the
// pre-signed URL returned by the server. A failed PUT leaves the registered
// media empty on the server.
func (c *Client) Upload(ctx context.Context, path string) (UploadResult, error) {
	mediaType, err := Classify(path)
	if err != nil {
		return UploadResult{}, err
	}
	contentMD5, err := Checksum(path)
	if err != nil {
		return UploadResult{}, err
	}
	id, uploadURL, err := c.register(ctx, mediaType, filepath.Base(path), contentMD5)
	if err != nil {
		return UploadResult{}, err
	}
	if err := c.put(ctx, uploadURL, path, contentMD5); err != nil {
		return UploadResult{}, err
	}
	c.logger.Debug().Int("media_id", id).Str("media_type", mediaType.String()).Msg("media uploaded")
	return UploadResult{ID: id, Type: mediaType}, nil
}

func (c *Client) register(ctx context.Context, mediaType consts.MediaType, name, contentMD5 string) (int, string, error) {
	env, err := c.request(ctx, http.MethodPost, c.endpointURL(mediaType.Endpoint()+"/"),
		withJSON(registerRequest{OriginKey: name, ContentMD5: contentMD5}),
	)
	if err != nil {
		return 0, "", err
	}
	id, err := env.Int("id")
	if err != nil {
		return 0, "", err
	}
	uploadURL, err := env.String("uploadUrl")
	if err != nil {
		return 0, "", err
	}
	return id, uploadURL, nil
}

func (c *Client) put(ctx context.Context, uploadURL, path, contentMD5 string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	header := http.Header{}
	header.Set("Content-MD5", contentMD5)
	_, err = c.request(ctx, http.MethodPut, uploadURL, withHeaders(header), withData(f, info.Size()))
	return err
}
