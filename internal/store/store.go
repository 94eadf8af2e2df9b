// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwazzer/dbba/internal/aws"
	"github.com/iwazzer/dbba/internal/log"
	"github.com/iwazzer/dbba/internal/snapshot"
)

// Store is one snapshot location.
type Store interface {
	Put(ctx context.Context, data []byte) error
	Get(ctx context.Context) ([]byte, error)
	String() string
}

// Open returns the store for location. s3:// locations build an S3 client
// with awsOpts.
func Open(ctx context.Context, location string, awsOpts ...aws.Option) (Store, error) {
	if rest, ok := strings.CutPrefix(location, "s3://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return nil, fmt.Errorf("invalid s3 location %q (want s3://bucket/key)", location)
		}
		client, err := aws.NewS3Client(ctx, awsOpts...)
		if err != nil {
			return nil, err
		}
		return NewS3(client, bucket, key), nil
	}
	if location == "" {
		return nil, fmt.Errorf("empty snapshot location")
	}
	return &File{Path: location}, nil
}

// Save encodes snap and writes it to st.
func Save(ctx context.Context, st Store, snap *snapshot.Snapshot) error {
	data, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}
	if err := st.Put(ctx, data); err != nil {
		return err
	}
	log.Debugf("saved snapshot to %s", st)
	return nil
}

// Load reads and decodes the snapshot in st.
func Load(ctx context.Context, st Store) (*snapshot.Snapshot, error) {
	data, err := st.Get(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := snapshot.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", st, err)
	}
	return snap, nil
}

// File is a snapshot on the local filesystem.
type File struct {
	Path string
}

func (f *File) String() string { return f.Path }

func (f *File) Put(_ context.Context, data []byte) error {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (f *File) Get(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return data, nil
}
