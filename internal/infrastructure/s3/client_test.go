package s3infra

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	body    string
	getErr  error
	gets    int
	putKey  string
	putBody string
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.putKey = *in.Key
	f.putBody = string(b)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestShell_CachesWithinTTL(t *testing.T) {
	f := &fakeObjects{body: "<html>v1</html>"}
	s := NewShellStore(f, "spa", "index.html", time.Minute)
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	b, err := s.Shell(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>v1</html>", string(b))

	f.body = "<html>v2</html>"
	b, err = s.Shell(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>v1</html>", string(b))
	assert.Equal(t, 1, f.gets)

	now = now.Add(2 * time.Minute)
	b, err = s.Shell(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>v2</html>", string(b))
	assert.Equal(t, 2, f.gets)
}

func TestShell_StaleCopyOnError(t *testing.T) {
	f := &fakeObjects{body: "<html>v1</html>"}
	s := NewShellStore(f, "spa", "index.html", time.Minute)
	now := time.Unix(1000, 0)
	s.now = func() time.Time { return now }

	_, err := s.Shell(context.Background())
	require.NoError(t, err)

	f.getErr = errors.New("no such bucket")
	now = now.Add(time.Hour)
	b, err := s.Shell(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>v1</html>", string(b))
}

func TestShell_ErrorWithoutCache(t *testing.T) {
	f := &fakeObjects{getErr: errors.New("access denied")}
	s := NewShellStore(f, "spa", "index.html", 0)

	_, err := s.Shell(context.Background())
	assert.ErrorContains(t, err, "access denied")
}

func TestPublish_InvalidatesCache(t *testing.T) {
	f := &fakeObjects{body: "<html>old</html>"}
	s := NewShellStore(f, "spa", "index.html", time.Hour)

	_, err := s.Shell(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Publish(context.Background(), strings.NewReader("<html>new</html>")))
	assert.Equal(t, "index.html", f.putKey)

	b, err := s.Shell(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>new</html>", string(b))
	assert.Equal(t, "s3://spa/index.html", s.Location())
}
