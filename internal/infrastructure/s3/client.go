package s3infra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultCacheTTL is how long a fetched shell is served before S3 is asked again.
const DefaultCacheTTL = time.Minute

// ObjectAPI is the subset of the S3 client the shell store uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewClient creates an S3 client. When endpointURL is set (LocalStack),
// it overrides the endpoint and enables path-style addressing.
func NewClient(awsCfg aws.Config, endpointURL string) *s3.Client {
	clientOpts := []func(*s3.Options){}
	if endpointURL != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpointURL)
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsCfg, clientOpts...)
}

// ShellStore serves the SPA index document from a bucket, caching it in memory.
type ShellStore struct {
	client ObjectAPI
	bucket string
	key    string
	ttl    time.Duration

	mu        sync.Mutex
	cached    []byte
	fetchedAt time.Time
	now       func() time.Time
}

func NewShellStore(client ObjectAPI, bucket, key string, ttl time.Duration) *ShellStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ShellStore{client: client, bucket: bucket, key: key, ttl: ttl, now: time.Now}
}

// Shell returns the shell document. A failed refresh falls back to the last
// cached copy when there is one.
func (s *ShellStore) Shell(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}
	body, err := s.download(ctx)
	if err != nil {
		if s.cached != nil {
			return s.cached, nil
		}
		return nil, err
	}
	s.cached = body
	s.fetchedAt = s.now()
	return body, nil
}

// Publish uploads a new shell document and drops the cached copy.
func (s *ShellStore) Publish(ctx context.Context, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(s.key),
		Body:         r,
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	return nil
}

// Location is the s3:// URL of the shell object.
func (s *ShellStore) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

func (s *ShellStore) download(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object: %w", err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return nil, fmt.Errorf("read shell: %w", err)
	}
	return buf.Bytes(), nil
}
