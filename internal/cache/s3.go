// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/staranto/talksgo/internal/cacheutil"
)

// S3API is the subset of the S3 client the cache uses.
type S3API interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// S3 stores zstd-compressed entries as objects named by the hashed key.
type S3 struct {
	client S3API
	bucket string
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewS3(client S3API, bucket, prefix string, ttl time.Duration) *S3 {
	return &S3{client: client, bucket: bucket, prefix: prefix, ttl: ttl, now: time.Now}
}

func (s *S3) objectKey(key string) string {
	return path.Join(s.prefix, cacheutil.EncodeKey(key))
}

func (s *S3) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := s.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(s.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get s3 object: %w", err)
	}
	defer out.Body.Close()

	if out.LastModified != nil && expired(*out.LastModified, s.ttl, s.now()) {
		return nil, false, nil
	}

	packed, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read s3 object: %w", err)
	}
	data, err := cacheutil.Unpack(packed)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *S3) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(s.bucket),
		Key:         awsv2.String(s.objectKey(key)),
		Body:        bytes.NewReader(cacheutil.Pack(value)),
		ContentType: awsv2.String("application/zstd"),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3 object: %w", err)
	}
	return nil
}
