package lib

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/siliconflow/imgup-cli/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlobStore(t *testing.T) {
	_, err := NewBlobStore(nil)
	assert.Error(t, err)

	_, err = NewBlobStore(&UploadTarget{Provider: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage provider [ftp]")

	store, err := NewBlobStore(&UploadTarget{Provider: meta.ProviderPresigned, UploadUrl: "https://bucket.example.com/a.png?sig=1"})
	require.NoError(t, err)
	assert.IsType(t, &PresignedStorageClient{}, store)

	_, err = NewBlobStore(&UploadTarget{Provider: meta.ProviderPresigned, UploadUrl: "/relative"})
	assert.Error(t, err)

	store, err = NewBlobStore(&UploadTarget{Provider: meta.ProviderS3, Bucket: "b", AccessKeyId: "ak", AccessKeySecret: "sk"})
	require.NoError(t, err)
	assert.IsType(t, &S3StorageClient{}, store)

	store, err = NewBlobStore(&UploadTarget{Provider: meta.ProviderMinIO, Endpoint: "http://127.0.0.1:9000", Bucket: "b", AccessKeyId: "ak", AccessKeySecret: "sk"})
	require.NoError(t, err)
	assert.IsType(t, &MinioStorageClient{}, store)

	store, err = NewBlobStore(&UploadTarget{Provider: meta.ProviderOSS, Endpoint: "oss-cn-shanghai.aliyuncs.com", Bucket: "b", AccessKeyId: "ak", AccessKeySecret: "sk", SecurityToken: "st"})
	require.NoError(t, err)
	assert.IsType(t, &AliOssStorageClient{}, store)
}

func TestParseRegionFromEndpoint(t *testing.T) {
	assert.Equal(t, "cn-shanghai", parseRegionFromEndpoint("oss-cn-shanghai.aliyuncs.com"))
	assert.Equal(t, "ap-southeast-1", parseRegionFromEndpoint("https://oss-ap-southeast-1.aliyuncs.com"))
	assert.Equal(t, "cn-hangzhou", parseRegionFromEndpoint("storage.example.com"))
}

func TestStoreURLs(t *testing.T) {
	assert.Equal(t, "https://b.example.com/a.png", stripQuery("https://b.example.com/a.png?X-Amz-Signature=1#frag"))
	assert.Equal(t, "https://cdn/a.png", publicURL(&UploadTarget{PublicUrl: "https://cdn/a.png"}, "https://fallback"))
	assert.Equal(t, "https://fallback", publicURL(&UploadTarget{}, "https://fallback"))

	assert.Equal(t, "https://x/a.png?download=1", downloadURL("https://x/a.png"))
	assert.Equal(t, "https://x/a.png?v=2&download=1", downloadURL("https://x/a.png?v=2"))
}

func TestProgressReader(t *testing.T) {
	src := strings.NewReader("")
	assert.Same(t, src, newProgressReader(src, 0, nil))

	var calls int
	var last int64
	r := newProgressReader(strings.NewReader(strings.Repeat("x", 64)), 64, func(consumed, total int64) {
		calls++
		last = consumed
		assert.Equal(t, int64(64), total)
	})
	pr := r.(*progressReader)
	pr.minInterval = 0
	pr.lastTime = time.Time{}

	buf := make([]byte, 16)
	for {
		if _, err := r.Read(buf); err != nil {
			break
		}
	}
	assert.Equal(t, 4, calls)
	assert.Equal(t, int64(64), last)
}

func TestProgressReadSeeker(t *testing.T) {
	src := strings.NewReader("")
	assert.Same(t, src, newProgressReadSeeker(src, 0, nil))

	var seen []int64
	rs := newProgressReadSeeker(strings.NewReader(strings.Repeat("x", 32)), 32, func(consumed, total int64) {
		seen = append(seen, consumed)
	})
	prs := rs.(*progressReadSeeker)
	prs.minInterval = 0

	buf := make([]byte, 16)
	_, err := rs.Read(buf)
	require.NoError(t, err)

	// 回到起点后重新计数
	pos, err := rs.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	_, err = io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, []int64{16, 32}, seen)

	pos, err = rs.Seek(-8, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(24), pos)
	assert.Equal(t, int64(24), prs.readBytes)
}
