package objstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// S3Config configures an S3ObjectStore.
//
// Grounded on _examples/original_source/src/oss/aws_s3_object_store.rs's
// AwsS3Config: Region/Bucket are required, AccessKeyID/SecretAccessKey are
// optional and fall back to the default credential chain when absent,
// Endpoint/PathStyle exist for S3-compatible backends (MinIO and similar).
type S3Config struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
}

func (c S3Config) validate() error {
	if c.Region == "" {
		return errors.New("objstore: region must be set")
	}
	if c.Bucket == "" {
		return errors.New("objstore: bucket must be set")
	}
	return nil
}

// S3ObjectStore implements ObjectStore against S3 or an S3-compatible
// backend, grounded on
// _examples/original_source/src/oss/aws_s3_object_store.rs's
// AwsS3ObjectStore.
type S3ObjectStore struct {
	client *s3.Client
	bucket string
}

// NewS3ObjectStore builds the AWS SDK client per cfg's credential and
// endpoint precedence: an explicit access key pair takes priority over the
// default credential chain, a custom Endpoint overrides the resolved service
// endpoint, and PathStyle selects path-style addressing whether or not an
// Endpoint is set.
func NewS3ObjectStore(ctx context.Context, cfg S3Config) (*S3ObjectStore, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return &S3ObjectStore{client: client, bucket: cfg.Bucket}, nil
}

func (o *S3ObjectStore) Put(ctx context.Context, key string, value []byte, opts PutOptions) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(value),
	}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}
	if len(opts.Metadata) > 0 {
		in.Metadata = opts.Metadata
	}
	_, err := o.client.PutObject(ctx, in)
	return err
}

func (o *S3ObjectStore) Get(ctx context.Context, key string, opts GetOptions) ([]byte, error) {
	in := &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	}
	if opts.Range != nil {
		in.Range = aws.String(formatRange(*opts.Range))
	}

	out, err := o.client.GetObject(ctx, in)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (o *S3ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	return err
}

// Head mirrors the original's head_object: a missing key resolves to
// (nil, nil), not an error, so callers can test existence without a
// separate not-found sentinel check.
func (o *S3ObjectStore) Head(ctx context.Context, key string) (*ObjectMeta, error) {
	out, err := o.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	meta := &ObjectMeta{Key: key}
	if out.ContentLength != nil {
		meta.Size = *out.ContentLength
	}
	if out.LastModified != nil {
		meta.LastModified = *out.LastModified
	}
	if out.ETag != nil {
		meta.ETag = *out.ETag
	}
	if out.ContentType != nil {
		meta.ContentType = *out.ContentType
	}
	return meta, nil
}

// List pages through ListObjectsV2 via its continuation token until maxKeys
// objects have been collected or the bucket prefix is exhausted.
func (o *S3ObjectStore) List(ctx context.Context, prefix string, maxKeys int) ([]ObjectMeta, error) {
	var (
		metas []ObjectMeta
		token *string
	)

	for {
		in := &s3.ListObjectsV2Input{
			Bucket: aws.String(o.bucket),
		}
		if prefix != "" {
			in.Prefix = aws.String(prefix)
		}
		if token != nil {
			in.ContinuationToken = token
		}

		out, err := o.client.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, err
		}

		for _, obj := range out.Contents {
			m := ObjectMeta{}
			if obj.Key != nil {
				m.Key = *obj.Key
			}
			if obj.Size != nil {
				m.Size = *obj.Size
			}
			if obj.LastModified != nil {
				m.LastModified = *obj.LastModified
			}
			if obj.ETag != nil {
				m.ETag = *obj.ETag
			}
			metas = append(metas, m)
			if maxKeys > 0 && len(metas) >= maxKeys {
				return metas, nil
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}

	return metas, nil
}

func formatRange(r ByteRange) string {
	return "bytes=" + strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End-1, 10)
}

func isNotFound(err error) bool {
	var nf *types.NoSuchKey
	if errors.As(err, &nf) {
		return true
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == 404
	}
	return false
}
