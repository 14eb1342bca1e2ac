package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink stores exported files. Keys are slash separated and relative.
type Sink interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// DirSink writes files below a directory.
type DirSink struct {
	root string
}

// NewDirSink creates a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{root: dir}
}

// Put implements Sink.
func (s *DirSink) Put(_ context.Context, key, _ string, body []byte) error {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0644)
}

// S3API is the part of *s3.Client used by S3Sink.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads files to a bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	sink := export.NewS3Sink(s3.NewFromConfig(cfg), "my-bucket", "site/")
type S3Sink struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Sink creates a sink writing below prefix in bucket.
func NewS3Sink(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// LoadS3Sink creates an S3 sink from the default AWS configuration
// (environment, shared config files, instance role). An empty region keeps
// the configured default.
func LoadS3Sink(ctx context.Context, bucket, prefix, region string) (*S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Key returns the object key used for key.
func (s *S3Sink) Key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

// Put implements Sink.
func (s *S3Sink) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", s.Key(key), err)
	}
	return nil
}

// MemorySink keeps files in memory. It is meant for tests and previews.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
	types map[string]string
}

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: map[string][]byte{}, types: map[string]string{}}
}

// Put implements Sink.
func (s *MemorySink) Put(_ context.Context, key, contentType string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = append([]byte(nil), body...)
	s.types[key] = contentType
	return nil
}

// Get returns a stored file.
func (s *MemorySink) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[key]
	return b, ok
}

// ContentType returns the content type a file was stored with.
func (s *MemorySink) ContentType(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.types[key]
}

// Keys returns the stored keys in order.
func (s *MemorySink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
