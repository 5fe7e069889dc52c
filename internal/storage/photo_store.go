package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// StoredPhoto identifies an uploaded meter photo.
type StoredPhoto struct {
	SecureURL string
	PublicID  string
}

// PhotoStore uploads meter photos to the remote object store.
type PhotoStore struct {
	client *s3.Client
	bucket string
	region string
	prefix string
}

func NewPhotoStore(ctx context.Context, bucket, region, prefix string) (*PhotoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &PhotoStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		prefix: prefix,
	}, nil
}

// Upload streams the raw photo bytes, tagged with the customer id.
func (p *PhotoStore) Upload(ctx context.Context, customerID string, photo []byte, mimeType string) (*StoredPhoto, error) {
	key := fmt.Sprintf("%s/%s/%s", p.prefix, customerID, uuid.New().String())

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(photo),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("photo upload failed: %w", err)
	}

	return &StoredPhoto{
		SecureURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key),
		PublicID:  key,
	}, nil
}

// Delete removes an uploaded photo. Used as best-effort compensation when a
// later gate fails, so an aborted submission retains no artifacts.
func (p *PhotoStore) Delete(ctx context.Context, publicID string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(publicID),
	})
	return err
}
