// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_Fetch uploads a small Live Set to a scratch bucket and
// reads it back through Fetch. Requires working AWS credentials.
func TestIntegration_Fetch(t *testing.T) {
	t.Setenv("ALSCTL_CACHE_DIR", t.TempDir())
	ctx := context.Background()

	client, err := NewClient(ctx, WithRegion("us-east-1"))
	require.NoError(t, err)

	bucket := fmt.Sprintf("alsctl-test-%d", time.Now().UnixNano())
	key := "sets/song.als"
	body := []byte(`<Ableton><LiveSet><Tracks/></LiveSet></Ableton>`)

	_, err = client.CreateBucket(ctx, &s3v2.CreateBucketInput{Bucket: awsv2.String(bucket)})
	require.NoError(t, err)
	defer func() {
		client.DeleteObject(ctx, &s3v2.DeleteObjectInput{Bucket: awsv2.String(bucket), Key: awsv2.String(key)})
		client.DeleteBucket(ctx, &s3v2.DeleteBucketInput{Bucket: awsv2.String(bucket)})
	}()

	_, err = client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
		Body:   bytes.NewReader(body),
	})
	require.NoError(t, err)

	got, err := Fetch(ctx, client, Scheme+bucket+"/"+key)
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = Fetch(ctx, client, Scheme+bucket+"/missing.als")
	assert.Error(t, err)
}
