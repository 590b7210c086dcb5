// Package s3fetch resolves s3:// inputs to local files.
package s3fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/user/vidplay/pkg/ports"
)

const scheme = "s3://"

// ErrInvalidURL is returned for s3:// URLs without bucket or key.
var ErrInvalidURL = errors.New("s3fetch: invalid s3 url")

// Getter is the subset of the S3 client used for downloads.
type Getter interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// Fetcher downloads S3 objects into a cache directory.
type Fetcher struct {
	client   Getter
	fs       ports.FileSystem
	cacheDir string
	logger   ports.Logger
}

// New creates a Fetcher using a session built from the environment.
// Credentials follow the standard AWS chain; region overrides AWS_DEFAULT_REGION when set.
func New(region, cacheDir string, fs ports.FileSystem, logger ports.Logger) (*Fetcher, error) {
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return NewWithClient(s3.New(sess), cacheDir, fs, logger), nil
}

// NewWithClient creates a Fetcher around an existing client.
func NewWithClient(client Getter, cacheDir string, fs ports.FileSystem, logger ports.Logger) *Fetcher {
	return &Fetcher{
		client:   client,
		fs:       fs,
		cacheDir: cacheDir,
		logger:   logger.WithComponent("s3"),
	}
}

// IsRemote reports whether input is an s3:// URL.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, scheme)
}

// ParseURL splits s3://bucket/key.
func ParseURL(input string) (bucket, key string, err error) {
	if !IsRemote(input) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, input)
	}
	rest := strings.TrimPrefix(input, scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, input)
	}
	return bucket, key, nil
}

// CachePath returns the local file used for bucket/key.
func (f *Fetcher) CachePath(bucket, key string) string {
	return filepath.Join(f.cacheDir, bucket, filepath.FromSlash(path.Clean("/" + key))[1:])
}

// Resolve returns a local path for input. Local paths are returned unchanged;
// S3 objects are downloaded once and reused from the cache afterwards.
func (f *Fetcher) Resolve(ctx context.Context, input string) (string, error) {
	if !IsRemote(input) {
		return input, nil
	}
	bucket, key, err := ParseURL(input)
	if err != nil {
		return "", err
	}

	local := f.CachePath(bucket, key)
	if exists, err := f.fs.Exists(local); err == nil && exists {
		f.logger.Debug("Using cached %s", local)
		return local, nil
	}

	f.logger.Info("Downloading %s", input)
	out, err := f.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("get s3 object: %w", err)
	}
	defer out.Body.Close()

	w, err := f.fs.Create(local)
	if err != nil {
		return "", fmt.Errorf("create cache file: %w", err)
	}
	n, err := io.Copy(w, out.Body)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		f.fs.Remove(local)
		return "", fmt.Errorf("download %s: %w", input, err)
	}

	f.logger.Info("Downloaded %d bytes to %s", n, local)
	return local, nil
}
