package chipqc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const gsPrefix = "gs://"

// IsGoogleStoragePath reports whether path names a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, gsPrefix)
}

// NeedsGoogleStorage reports whether any of the paths points at Google
// Storage, so callers only create a storage.Client when one is required.
func NeedsGoogleStorage(paths ...string) bool {
	for _, path := range paths {
		if IsGoogleStoragePath(path) {
			return true
		}
	}

	return false
}

// SplitGoogleStoragePath splits gs://bucket/object into its bucket and object
// names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, gsPrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// OpenInput opens a local file, stdin ("-") or a Google Storage object and
// transparently decompresses it. client may be nil when no gs:// path is
// used.
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var raw io.ReadCloser

	switch {
	case path == "-":
		raw = io.NopCloser(os.Stdin)
	case IsGoogleStoragePath(path):
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client was configured", path)
		}
		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}
		raw = rdr
	default:
		f, err := os.Open(ExpandHome(path))
		if err != nil {
			return nil, pfx.Err(err)
		}
		raw = f
	}

	dec, err := MaybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return &layeredCloser{Reader: dec, closers: []io.Closer{dec, raw}}, nil
}

// CreateOutput creates a local file, stdout ("-") or a Google Storage object
// for writing. For Google Storage, the object is only committed when Close
// returns without error.
func CreateOutput(ctx context.Context, path string, client *storage.Client) (io.WriteCloser, error) {
	switch {
	case path == "-":
		return nopWriteCloser{os.Stdout}, nil
	case IsGoogleStoragePath(path):
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client was configured", path)
		}
		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return client.Bucket(bucketName).Object(pathName).NewWriter(ctx), nil
	}

	f, err := os.Create(ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

// layeredCloser closes every layer of a decorated reader, innermost last.
type layeredCloser struct {
	io.Reader
	closers []io.Closer
}

func (l *layeredCloser) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
