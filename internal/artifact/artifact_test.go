package artifact

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	bucket string
	key    string
	body   string
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

func writeArtifact(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "App-1.0.0-net8.0-win-x64.zip")
	require.NoError(t, os.WriteFile(p, []byte("zip"), 0o600))
	return p
}

func TestParseLocation_When_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Location
	}{
		{name: "directory", in: "./releases/App", want: Location{Dir: "releases/App"}},
		{name: "bucket only", in: "s3://releases", want: Location{Bucket: "releases"}},
		{name: "bucket and prefix", in: "s3://releases/apps/App/", want: Location{Bucket: "releases", Prefix: "apps/App"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLocation(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocation_When_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseLocation("  ")
	require.ErrorIs(t, err, ErrEmptyLocation)

	_, err = ParseLocation("s3:///prefix")
	require.Error(t, err)
}

func TestDirStore_Put_When_Called(t *testing.T) {
	t.Parallel()

	src := writeArtifact(t)
	dir := filepath.Join(t.TempDir(), "App")
	store, err := Open(context.Background(), dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), src, "App-1.0.0-net8.0-win-x64.zip"))

	assert.FileExists(t, filepath.Join(dir, "App-1.0.0-net8.0-win-x64.zip"))
	assert.Equal(t, dir, store.Location())
}

func TestS3Store_Put_When_Called(t *testing.T) {
	t.Parallel()

	client := &fakeS3{}
	store := NewS3StoreWithClient(client, "releases", "apps/App")

	require.NoError(t, store.Put(context.Background(), writeArtifact(t), "App.zip"))

	assert.Equal(t, "releases", client.bucket)
	assert.Equal(t, "apps/App/App.zip", client.key)
	assert.Equal(t, "zip", client.body)
	assert.Equal(t, "s3://releases/apps/App", store.Location())
}

func TestS3Store_Put_When_UploadFails(t *testing.T) {
	t.Parallel()

	boom := errors.New("denied")
	store := NewS3StoreWithClient(&fakeS3{err: boom}, "releases", "")

	err := store.Put(context.Background(), writeArtifact(t), "App.zip")

	require.ErrorIs(t, err, boom)
}

func TestS3Store_Put_When_FileMissing(t *testing.T) {
	t.Parallel()

	store := NewS3StoreWithClient(&fakeS3{}, "releases", "")

	err := store.Put(context.Background(), filepath.Join(t.TempDir(), "nope.zip"), "nope.zip")

	require.ErrorIs(t, err, os.ErrNotExist)
}
