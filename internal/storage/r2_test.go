package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"brewline/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	fake := &fakePutter{}
	client := NewR2ClientWith(fake, "menu-images", "https://cdn.example.com")

	url, err := client.Upload(context.Background(), "menu/1/abc.png", strings.NewReader("png"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/menu/1/abc.png", url)
	assert.Equal(t, "menu-images", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "menu/1/abc.png", aws.ToString(fake.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
}

func TestUpload_Error(t *testing.T) {
	client := NewR2ClientWith(&fakePutter{err: errors.New("denied")}, "b", "https://cdn")

	_, err := client.Upload(context.Background(), "k", strings.NewReader(""), "")
	assert.Error(t, err)
}

func TestNewR2Client_NotConfigured(t *testing.T) {
	_, err := NewR2Client(context.Background(), config.StorageConfig{})
	assert.Error(t, err)
}
