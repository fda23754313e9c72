// Package s3 stores uploaded recordings in an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"callcenter-backend/internal/shared/storage/object"
	"callcenter-backend/internal/shared/util"
)

// Store writes objects to a bucket under an optional prefix.
type Store struct {
	client *awss3.Client
	bucket string
	prefix string
}

// New builds a client from the default AWS credential chain.
func New(ctx context.Context, region, bucket, prefix string) (*Store, error) {
	if bucket == "" {
		return nil, errors.New("s3 store: bucket is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("s3 store: load aws config: %w", err)
	}
	return &Store{
		client: awss3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (s *Store) Save(ctx context.Context, fileName, mimeType string, r io.Reader) (object.SaveResult, error) {
	key, err := s.buildKey(fileName)
	if err != nil {
		return object.SaveResult{}, err
	}

	// PutObject needs a seekable body for signing, so buffer the upload.
	data, err := io.ReadAll(r)
	if err != nil {
		return object.SaveResult{}, fmt.Errorf("s3 store: read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return object.SaveResult{}, fmt.Errorf("s3 store: put object: %w", err)
	}

	return object.SaveResult{Key: key, SizeBytes: int64(len(data)), MimeType: mimeType}, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, object.ErrNotFound
		}
		return nil, fmt.Errorf("s3 store: get object: %w", err)
	}
	return out.Body, nil
}

func (s *Store) Locator(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}

func (s *Store) buildKey(fileName string) (string, error) {
	safe, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("s3 store: %w", err)
	}
	date := time.Now().UTC().Format("2006/01/02")
	key := fmt.Sprintf("%s/%s_%s", date, uuid.NewString(), safe)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key, nil
}
