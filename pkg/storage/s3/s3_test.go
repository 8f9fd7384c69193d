package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"pricealert/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string][]byte
	bucket  string
	err     error
}

func (f *fakeObjects) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	return &awss3.PutObjectOutput{}, nil
}

// go test -v --run TestS3Store
func TestS3Store(t *testing.T) {
	ctx := context.Background()
	fake := &fakeObjects{objects: map[string][]byte{}}
	s := NewWithClient(fake, "alerts-bucket", "pricealert")

	_, err := s.Get(ctx, "crypto_alerts")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "crypto_alerts", []byte(`[]`)))
	assert.Contains(t, fake.objects, "pricealert/crypto_alerts.json")

	got, err := s.Get(ctx, "crypto_alerts")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.Equal(t, "alerts-bucket", fake.bucket)
}

// go test -v --run TestS3StoreError
func TestS3StoreError(t *testing.T) {
	s := NewWithClient(&fakeObjects{err: errors.New("access denied")}, "b", "")

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.Error(t, s.Put(context.Background(), "k", nil))
}
