package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/foodsnap/backend/internal/models"
)

// S3PutObjectAPI is the part of the S3 client the archive needs
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AnalysisArchiver writes each persisted analysis to S3 as a JSON document
type AnalysisArchiver struct {
	client S3PutObjectAPI
	bucket string
}

// NewAnalysisArchiver creates a new AnalysisArchiver instance
func NewAnalysisArchiver(client S3PutObjectAPI, bucket string) *AnalysisArchiver {
	return &AnalysisArchiver{client: client, bucket: bucket}
}

// ArchiveKey returns the object key for an analysis, partitioned by year and month
func ArchiveKey(analysis *models.FoodAnalysis) string {
	created := analysis.CreatedAt.UTC()
	return fmt.Sprintf("analyses/%04d/%02d/%d.json", created.Year(), int(created.Month()), analysis.ID)
}

// AnalysisCompleted implements AnalysisObserver
func (a *AnalysisArchiver) AnalysisCompleted(ctx context.Context, analysis *models.FoodAnalysis) error {
	body, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(ArchiveKey(analysis)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive analysis %d: %w", analysis.ID, err)
	}
	return nil
}
