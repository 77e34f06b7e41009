package cache

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory S3API. Multipart uploads are not supported; the
// uploader only uses them for bodies larger than one part.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string // "bucket/key" -> body
	headErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]string)}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

var errMultipart = errors.New("multipart upload not supported by fake")

func (f *fakeS3) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errMultipart
}

func (f *fakeS3) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errMultipart
}

func (f *fakeS3) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errMultipart
}

func (f *fakeS3) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errMultipart
}

func TestS3Cache_ObjectKeys(t *testing.T) {
	fake := newFakeS3()
	c, err := NewS3Cache("s3", "bucket", "/users/me/", fake)
	require.NoError(t, err)

	require.NoError(t, c.Save("doc-1", "hello"))
	assert.Equal(t, "hello", fake.objects["bucket/users/me/snapshots/doc-1"])
}

func TestS3Cache_RequiresBucket(t *testing.T) {
	_, err := NewS3Cache("s3", "", "", newFakeS3())
	assert.Error(t, err)
}

func TestS3Cache_ValidateSetup(t *testing.T) {
	fake := newFakeS3()
	c, err := NewS3Cache("s3", "bucket", "", fake)
	require.NoError(t, err)
	require.NoError(t, c.ValidateSetup())

	fake.headErr = errors.New("403 forbidden")
	assert.ErrorContains(t, c.ValidateSetup(), "not accessible")
}

func TestS3Cache_RejectsUnsafeIDs(t *testing.T) {
	c, err := NewS3Cache("s3", "bucket", "", newFakeS3())
	require.NoError(t, err)
	assert.Error(t, c.Save("../other", "x"))
}
