package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/models"
)

// S3Repository keeps the inventory as a JSON object in a bucket
type S3Repository struct {
	client *s3.Client
	bucket string
	key    string
}

var _ inventory.Repository = (*S3Repository)(nil)

// NewS3Repository stores the slot as "<slot>.json" in the configured bucket
func NewS3Repository(s3cfg *config.S3Config, slot string) *S3Repository {
	return &S3Repository{
		client: s3cfg.Client,
		bucket: s3cfg.BucketName,
		key:    slot + ".json",
	}
}

// Load fetches the object; a missing object is an empty inventory
func (r *S3Repository) Load(ctx context.Context) ([]models.FoodItem, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []models.FoodItem{}, nil
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", r.bucket, r.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return decodeItems(data)
}

// Save uploads the full collection, replacing the object
func (r *S3Repository) Save(ctx context.Context, items []models.FoodItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", r.bucket, r.key, err)
	}
	return nil
}
