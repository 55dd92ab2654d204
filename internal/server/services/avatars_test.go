package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lyonblue/PHADMINISTRATION/internal/server/config"
)

func withPresignStubs(t *testing.T, put, get func() (*v4.PresignedHTTPRequest, error)) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origPut := presignPutObject
	origGet := presignGetObject

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return put()
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return get()
	}

	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		presignPutObject = origPut
		presignGetObject = origGet
	})
}

func TestAvatarPresignPut(t *testing.T) {
	withPresignStubs(t,
		func() (*v4.PresignedHTTPRequest, error) {
			return &v4.PresignedHTTPRequest{URL: "https://minio/put"}, nil
		},
		func() (*v4.PresignedHTTPRequest, error) { return nil, errors.New("unexpected get") },
	)

	s := NewAvatarService(&config.Config{S3Bucket: "avatars", S3Region: "us-east-1"})
	key, url, err := s.GetPresignedPutURL(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetPresignedPutURL error: %v", err)
	}
	if url != "https://minio/put" {
		t.Fatalf("unexpected url: %q", url)
	}
	if !strings.HasPrefix(key, "avatars/u1/") {
		t.Fatalf("key must be namespaced per user, got %q", key)
	}
}

func TestAvatarPresignGet(t *testing.T) {
	withPresignStubs(t,
		func() (*v4.PresignedHTTPRequest, error) { return nil, errors.New("unexpected put") },
		func() (*v4.PresignedHTTPRequest, error) {
			return &v4.PresignedHTTPRequest{URL: "https://minio/get"}, nil
		},
	)

	s := NewAvatarService(&config.Config{S3Bucket: "avatars", S3Region: "us-east-1"})
	url, err := s.GetPresignedGetURL(context.Background(), "avatars/u1/k")
	if err != nil {
		t.Fatalf("GetPresignedGetURL error: %v", err)
	}
	if url != "https://minio/get" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestAvatarPresignPut_Error(t *testing.T) {
	withPresignStubs(t,
		func() (*v4.PresignedHTTPRequest, error) { return nil, errors.New("boom") },
		func() (*v4.PresignedHTTPRequest, error) { return nil, errors.New("boom") },
	)

	s := NewAvatarService(&config.Config{S3Bucket: "avatars", S3Region: "us-east-1"})
	if _, _, err := s.GetPresignedPutURL(context.Background(), "u1"); err == nil {
		t.Fatal("want error")
	}
}
