package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	"studybuddy/pkg/storageref"
	"studybuddy/types"
)

// Files is the file store client.
type Files struct {
	api *API
}

func NewFiles(api *API) *Files {
	return &Files{api: api}
}

// Upload stores data at container/objectPath and returns its public URL.
func (f *Files) Upload(ctx context.Context, container, objectPath string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", path.Base(objectPath))
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var resp types.UploadResponse
	err = f.api.do(ctx, http.MethodPost, objectRoute(container, objectPath), &buf, mw.FormDataContentType(), &resp)
	if err != nil {
		return "", err
	}
	if resp.PublicURL == "" {
		return f.PublicURL(container, objectPath), nil
	}
	return resp.PublicURL, nil
}

// PublicURL is computed locally, no request is made.
func (f *Files) PublicURL(container, objectPath string) string {
	return storageref.PublicURL(f.api.BaseURL(), container, objectPath)
}

func (f *Files) Remove(ctx context.Context, container, objectPath string) error {
	return f.api.do(ctx, http.MethodDelete, objectRoute(container, objectPath), nil, "", nil)
}

func objectRoute(container, objectPath string) string {
	segs := strings.Split(strings.Trim(objectPath, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("/api/v1/storage/%s/%s", url.PathEscape(container), strings.Join(segs, "/"))
}
