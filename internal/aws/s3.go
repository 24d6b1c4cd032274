// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/alsctl/alsctl/internal/cacheutil"
	"github.com/alsctl/alsctl/internal/log"
)

// Scheme is the URI prefix that selects S3.
const Scheme = "s3://"

// ErrBadURI is returned for s3:// URIs without a bucket or key.
var ErrBadURI = errors.New("invalid s3 uri")

// ObjectAPI is the part of the S3 client used here.
type ObjectAPI interface {
	HeadObject(ctx context.Context, in *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// IsURI reports whether spec names an S3 object.
func IsURI(spec string) bool {
	return strings.HasPrefix(spec, Scheme)
}

// ParseURI splits s3://bucket/key.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrBadURI, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrBadURI, uri)
	}
	return bucket, key, nil
}

// Fetch returns the object body for uri. Bodies are cached by bucket, key and
// ETag, so an unchanged object is read from disk after the first fetch.
func Fetch(ctx context.Context, api ObjectAPI, uri string) ([]byte, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	head, err := api.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", uri, err)
	}

	sub := []string{"s3", bucket}
	cacheKey := key + "@" + awsv2.ToString(head.ETag)
	if entry, ok := cacheutil.Read(sub, cacheKey); ok {
		return entry.Data, nil
	}

	out, err := api.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", uri, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	log.Debugf("s3 fetched: uri=%s bytes=%d", uri, len(data))

	if head.ETag != nil {
		if err := cacheutil.Write(sub, cacheKey, data); err != nil {
			log.WithError(err).Warn("failed to cache s3 object")
		}
	}
	return data, nil
}
