package objstore

import (
	"context"

	"github.com/hatlonely/goflux/internal/registry"
)

func init() {
	registry.RegisterInterface[ObjectStore, *S3ObjectStore](
		"s3",
		func(cfg S3Config) (*S3ObjectStore, error) {
			return NewS3ObjectStore(context.Background(), cfg)
		},
	)
}
