// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	var o options
	for _, opt := range []Option{
		WithProfile("dev"),
		WithRegion("eu-west-1"),
		WithEndpoint("http://localhost:9000"),
		WithRetryer(func() awsv2.Retryer { return retry.NewStandard() }),
	} {
		opt(&o)
	}

	assert.Equal(t, "dev", o.profile)
	assert.Equal(t, "eu-west-1", o.region)
	assert.Equal(t, "http://localhost:9000", o.endpoint)
	assert.NotNil(t, o.retryer)
	assert.Len(t, loadOptions(o), 3)
}

func TestLoadOptions_Empty(t *testing.T) {
	assert.Empty(t, loadOptions(options{}))
	assert.Empty(t, s3Options(options{}))
}

func TestS3Options_Endpoint(t *testing.T) {
	fns := s3Options(options{endpoint: "http://minio:9000"})
	require.Len(t, fns, 1)

	var so s3v2.Options
	fns[0](&so)
	require.NotNil(t, so.BaseEndpoint)
	assert.Equal(t, "http://minio:9000", *so.BaseEndpoint)
	assert.True(t, so.UsePathStyle)
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_PROFILE", "")

	client, err := NewS3Client(context.Background(), WithRegion("us-east-1"), WithEndpoint("http://localhost:9000"))
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "us-east-1", client.Options().Region)
}
