package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahaya/internal/config"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	info, err := s.Put(ctx, "documents/a.pdf", strings.NewReader("%PDF-1.7"), PutObjectOptions{
		Size:        8,
		ContentType: "application/pdf",
		Metadata:    map[string]string{"original-filename": "a.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, "documents/a.pdf", info.Key)
	assert.Equal(t, int64(8), info.Size)
	assert.NotEmpty(t, info.ETag)

	rc, got, err := s.Get(ctx, "documents/a.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.7", string(body))
	assert.Equal(t, "application/pdf", got.ContentType)

	url, err := s.PresignGet(ctx, "documents/a.pdf", 0)
	require.NoError(t, err)
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjc=", url)

	require.NoError(t, s.Delete(ctx, "documents/a.pdf"))
	require.NoError(t, s.Delete(ctx, "documents/a.pdf"))

	_, _, err = s.Get(ctx, "documents/a.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = s.PresignGet(ctx, "documents/a.pdf", 0)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", DataURI("image/png", []byte{1, 2}))
	assert.Equal(t, "data:application/octet-stream;base64,", DataURI("", nil))
}

func TestNewMinIO_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{}, want: "endpoint is required"},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, want: "credentials are required"},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, want: "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.Nil(t, s)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(minio.ErrorResponse{Code: "NoSuchKey"}), ErrObjectNotFound)
	assert.ErrorIs(t, translateError(minio.ErrorResponse{Code: "NotFound"}), ErrObjectNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.Equal(t, denied, translateError(denied))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, "", contentDisposition(""))
	assert.Equal(t, "inline; filename=income.pdf", contentDisposition("income.pdf"))
	assert.Equal(t, `inline; filename="my scan.png"`, contentDisposition("my scan.png"))
}
