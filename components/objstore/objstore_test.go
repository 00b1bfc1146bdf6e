package objstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hatlonely/goflux/components/objstore"
)

func TestS3ConfigValidation(t *testing.T) {
	_, err := objstore.NewS3ObjectStore(nil, objstore.S3Config{})
	assert.Error(t, err, "region must be set")

	_, err = objstore.NewS3ObjectStore(nil, objstore.S3Config{Region: "us-east-1"})
	assert.Error(t, err, "bucket must be set")
}
