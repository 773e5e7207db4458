// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storage provides S3-compatible object storage for uploaded media.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage is the subset of object storage the media service needs.
type ObjectStorage interface {
	Put(context context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(context context.Context, key string) error
	URL(key string) string
}

// MinioConfig configures [NewMinioClient].
type MinioConfig struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// PublicURL is the base URL objects are served from. When empty the
	// endpoint and bucket are used.
	PublicURL string
}

// MinioClient wraps the MinIO SDK client and bucket name.
type MinioClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioClient constructs a MinIO client from config.
func NewMinioClient(config MinioConfig) (*MinioClient, error) {
	if strings.TrimSpace(config.Endpoint) == "" {
		return nil, errors.New("storage: endpoint is required")
	}
	if strings.TrimSpace(config.AccessKey) == "" || strings.TrimSpace(config.SecretKey) == "" {
		return nil, errors.New("storage: access key and secret key are required")
	}
	if strings.TrimSpace(config.Bucket) == "" {
		return nil, errors.New("storage: bucket is required")
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioClient{
		client:    client,
		bucket:    config.Bucket,
		publicURL: PublicBase(config),
	}, nil
}

// PublicBase resolves the base URL objects are served from.
func PublicBase(config MinioConfig) string {
	if config.PublicURL != "" {
		return strings.TrimRight(config.PublicURL, "/")
	}

	scheme := "http"
	if config.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + strings.TrimRight(config.Endpoint, "/") + "/" + config.Bucket
}

// EnsureBucket ensures the configured bucket exists.
func (m *MinioClient) EnsureBucket(context context.Context) error {
	exists, err := m.client.BucketExists(context, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(context, m.bucket, minio.MakeBucketOptions{})
}

// Put uploads an object to the configured bucket.
func (m *MinioClient) Put(context context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(context, m.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	return err
}

// Delete removes an object from the configured bucket.
func (m *MinioClient) Delete(context context.Context, key string) error {
	return m.client.RemoveObject(context, m.bucket, key, minio.RemoveObjectOptions{})
}

// URL returns the public URL of an object.
func (m *MinioClient) URL(key string) string {
	return m.publicURL + "/" + strings.TrimLeft(key, "/")
}

// Ping checks that the bucket is reachable.
func (m *MinioClient) Ping(context context.Context) error {
	_, err := m.client.BucketExists(context, m.bucket)
	return err
}
