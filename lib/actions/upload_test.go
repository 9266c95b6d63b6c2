package actions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/siliconflow/imgup-cli/config"
	"github.com/siliconflow/imgup-cli/lib"
	"github.com/siliconflow/imgup-cli/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPresignedRoute 授权路由返回指向自身的预签名地址，并记录收到的对象
func newPresignedRoute(t *testing.T, stored map[string]string) *httptest.Server {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			data, _ := io.ReadAll(r.Body)
			stored[r.URL.Path] = string(data)
			return
		}
		var req lib.GenerateClientTokenReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(lib.GenerateClientTokenResp{
			Type:        meta.EventGenerateClientToken,
			ClientToken: "tok",
			Target: &lib.UploadTarget{
				Provider:  meta.ProviderPresigned,
				ObjectKey: req.Payload.Pathname,
				UploadUrl: srv.URL + "/" + req.Payload.Pathname + "?sig=1",
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBlobUploader_Upload(t *testing.T) {
	stored := map[string]string{}
	srv := newPresignedRoute(t, stored)

	p := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))
	file, err := NewSelectedFile(p)
	require.NoError(t, err)

	up := NewBlobUploaderFromArgs(&config.Argument{
		BaseURL:         srv.URL,
		HandleUploadURL: meta.DefaultHandleUploadURL,
		Access:          meta.AccessPublic,
	})
	s, _ := FormState{}.Apply(FileSelected{File: file})
	s, err = Submit(context.Background(), s, up, nil)
	require.NoError(t, err)

	assert.Equal(t, PhaseSucceeded, s.Phase)
	assert.Equal(t, srv.URL+"/cat.png", s.ResultURL())
	assert.Equal(t, "hello", stored["/cat.png"])
}

func TestBlobUploader_RejectsUnsupportedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	up := NewBlobUploader(lib.UploadOptions{Access: meta.AccessPublic}, false, 0)
	_, err := up.Upload(context.Background(), SelectedFile{Path: p, Name: "notes.txt"}, nil)
	require.Error(t, err)
	assert.Equal(t, lib.StepReadFile, lib.GetStep(err))
}

func TestBlobUploader_WebPConversion(t *testing.T) {
	stored := map[string]string{}
	srv := newPresignedRoute(t, stored)

	dir := t.TempDir()
	src := filepath.Join(dir, "cat.png")
	converted := filepath.Join(dir, "cat.webp")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(converted, []byte("webp-bytes"), 0o644))

	up := NewBlobUploader(lib.UploadOptions{
		Access:          meta.AccessPublic,
		HandleUploadURL: meta.DefaultHandleUploadURL,
		Client:          lib.NewClient(srv.URL, ""),
	}, true, 80)
	cleaned := false
	var gotQuality uint
	up.convert = func(path string, quality uint) (string, func(), error) {
		gotQuality = quality
		return converted, func() { cleaned = true }, nil
	}

	res, err := up.Upload(context.Background(), SelectedFile{Path: src, Name: "cat.png"}, nil)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/cat.webp", res.Url)
	assert.Equal(t, "image/webp", res.ContentType)
	assert.Equal(t, "webp-bytes", stored["/cat.webp"])
	assert.Equal(t, uint(80), gotQuality)
	assert.True(t, cleaned)
}

func TestBlobUploader_WebPFallback(t *testing.T) {
	stored := map[string]string{}
	srv := newPresignedRoute(t, stored)

	src := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0o644))

	up := NewBlobUploader(lib.UploadOptions{
		Access:          meta.AccessPublic,
		HandleUploadURL: meta.DefaultHandleUploadURL,
		Client:          lib.NewClient(srv.URL, ""),
	}, true, 80)
	up.convert = func(string, uint) (string, func(), error) {
		return "", nil, assert.AnError
	}

	res, err := up.Upload(context.Background(), SelectedFile{Path: src, Name: "cat.png"}, nil)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/cat.png", res.Url)
	assert.Equal(t, "png-bytes", stored["/cat.png"])
}
