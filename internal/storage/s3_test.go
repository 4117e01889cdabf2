package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectsInput
	putErr  error
	delOut  *s3.DeleteObjectsOutput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.deletes = append(f.deletes, in)
	if f.delOut != nil {
		return f.delOut, nil
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func TestS3BucketUploadSetsPolicyHeaders(t *testing.T) {
	fake := &fakeS3{}
	bucket := newS3Bucket(fake, S3Config{Bucket: "images", Region: "ap-southeast-1"})

	err := bucket.Upload(context.Background(), "products/1.png", strings.NewReader("x"), 1, UploadOptions{
		ContentType:  "image/png",
		CacheControl: "max-age=3600",
	})
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)

	put := fake.puts[0]
	assert.Equal(t, "images", aws.ToString(put.Bucket))
	assert.Equal(t, "products/1.png", aws.ToString(put.Key))
	assert.Equal(t, "*", aws.ToString(put.IfNoneMatch))
	assert.Equal(t, "max-age=3600", aws.ToString(put.CacheControl))
	assert.Equal(t, "image/png", aws.ToString(put.ContentType))
}

func TestS3BucketUploadMapsPreconditionFailure(t *testing.T) {
	fake := &fakeS3{putErr: &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}}
	bucket := newS3Bucket(fake, S3Config{Bucket: "images", Region: "us-east-1"})

	err := bucket.Upload(context.Background(), "articles/2.jpg", strings.NewReader("x"), 1, UploadOptions{})
	assert.ErrorIs(t, err, ErrObjectExists)

	fake.putErr = errors.New("connection reset")
	err = bucket.Upload(context.Background(), "articles/2.jpg", strings.NewReader("x"), 1, UploadOptions{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrObjectExists)
}

func TestS3BucketPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{
			name: "virtual host",
			cfg:  S3Config{Bucket: "images", Region: "ap-southeast-1"},
			want: "https://images.s3.ap-southeast-1.amazonaws.com/products/a.png",
		},
		{
			name: "custom endpoint",
			cfg:  S3Config{Bucket: "images", Endpoint: "https://project.storage.example/storage/v1/object/public/"},
			want: "https://project.storage.example/storage/v1/object/public/images/products/a.png",
		},
		{
			name: "explicit public base",
			cfg:  S3Config{Bucket: "images", PublicBaseURL: "https://cdn.example/images"},
			want: "https://cdn.example/images/products/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := newS3Bucket(&fakeS3{}, tt.cfg)
			assert.Equal(t, tt.want, bucket.PublicURL("products/a.png"))
		})
	}
}

func TestS3BucketRemoveBatches(t *testing.T) {
	fake := &fakeS3{}
	bucket := newS3Bucket(fake, S3Config{Bucket: "images", Region: "us-east-1"})

	require.NoError(t, bucket.Remove(context.Background(), "products/a.png", "products/b.png"))
	require.Len(t, fake.deletes, 1)
	assert.Len(t, fake.deletes[0].Delete.Objects, 2)

	fake.delOut = &s3.DeleteObjectsOutput{Errors: []types.Error{{Key: aws.String("products/a.png"), Message: aws.String("AccessDenied")}}}
	err := bucket.Remove(context.Background(), "products/a.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")

	require.NoError(t, bucket.Remove(context.Background()))
}
