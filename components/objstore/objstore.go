// Package objstore implements the object storage abstraction over S3 and
// S3-compatible backends.
//
// Grounded on _examples/original_source/src/oss/object_store.rs's
// ObjectStore trait, scoped to its core CRUD surface: the original's
// put_stream/get_stream/put_file/put_directory/get_directory default-impl
// layers were trimmed, since no SPEC_FULL.md component needs directory-batch
// transfer or unbounded streaming — only the CRUD surface those layers
// themselves are built on.
package objstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for a missing key. Head reports a missing
// key as (nil, nil) instead.
var ErrNotFound = errors.New("objstore: object not found")

// ObjectMeta describes an object without its contents.
type ObjectMeta struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
	ContentType  string
}

// PutOptions configures Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// ByteRange requests a partial object, end exclusive.
type ByteRange struct {
	Start int64
	End   int64
}

// GetOptions configures Get.
type GetOptions struct {
	Range *ByteRange
}

// ObjectStore is a backend-agnostic object storage interface.
type ObjectStore interface {
	Put(ctx context.Context, key string, value []byte, opts PutOptions) error
	Get(ctx context.Context, key string, opts GetOptions) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Head(ctx context.Context, key string) (*ObjectMeta, error)
	List(ctx context.Context, prefix string, maxKeys int) ([]ObjectMeta, error)
}
