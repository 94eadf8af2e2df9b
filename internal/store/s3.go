// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/iwazzer/dbba/internal/cacheutil"
	"github.com/iwazzer/dbba/internal/config"
	"github.com/iwazzer/dbba/internal/log"
)

// S3API is the subset of the S3 client the store uses.
type S3API interface {
	HeadObject(ctx context.Context, in *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// S3 is a snapshot stored as one S3 object.
type S3 struct {
	client S3API
	Bucket string
	Key    string
}

// NewS3 returns an S3 store for bucket/key.
func NewS3(client S3API, bucket, key string) *S3 {
	return &S3{client: client, Bucket: bucket, Key: key}
}

func (s *S3) String() string { return "s3://" + s.Bucket + "/" + s.Key }

func (s *S3) namespace() []string {
	return []string{"s3", s.Bucket, s.Key}
}

func (s *S3) Put(ctx context.Context, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(s.Bucket),
		Key:         awsv2.String(s.Key),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put S3 object %s: %w", s, err)
	}
	return nil
}

// Get downloads the object unless a cached copy with the current ETag exists.
func (s *S3) Get(ctx context.Context) ([]byte, error) {
	cleanHours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Purge(cleanHours); err != nil {
		log.WithError(err).Warnf("failed to purge cache")
	}

	head, err := s.client.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stat S3 object %s: %w", s, err)
	}
	etag := strings.Trim(awsv2.ToString(head.ETag), `"`)

	if etag != "" {
		if entry, ok := cacheutil.Read(s.namespace(), etag); ok {
			return entry.Data, nil
		}
	}

	obj, err := s.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object %s: %w", s, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if etag != "" {
		if err := cacheutil.Write(s.namespace(), etag, data); err != nil {
			log.WithError(err).Errorf("error writing to cache")
		}
	}
	return data, nil
}
