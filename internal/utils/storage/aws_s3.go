package storage

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/internal/utils"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	AllowImage   = []string{"image/jpeg", "image/png", "image/webp", "image/heic"}
	AllowReceipt = append(append([]string{}, AllowImage...), "application/pdf")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, name string, file *multipart.FileHeader, dir string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
	}

	objectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client objectAPI
		bucket string
		region string
	}
)

// NewAwsS3 builds a client from the S3 settings. Without static keys the default
// AWS credential chain is used.
func NewAwsS3(ctx context.Context, config *utils.Config) (AwsS3, error) {
	if config.AWSS3Bucket == "" {
		return nil, domain.NewError(domain.ErrConfigurationMissing, "AWS_S3_BUCKET is not set")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(config.AWSS3Region)}
	if config.AWSAccessKey != "" && config.AWSSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AWSAccessKey, config.AWSSecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newAwsS3(s3.NewFromConfig(cfg), config.AWSS3Bucket, config.AWSS3Region), nil
}

func newAwsS3(client objectAPI, bucket, region string) AwsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

// UploadFile stores the file under dir and returns its object key.
func (a *awsS3) UploadFile(ctx context.Context, name string, file *multipart.FileHeader, dir string, allowed ...string) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if len(allowed) > 0 && !isAllowed(contentType, allowed) {
		return "", domain.Validation("file type %q is not allowed (%s)", contentType, strings.Join(allowed, ", "))
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s-%s%s", dir, name, uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", objectKey, err)
	}
	return nil
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func isAllowed(contentType string, allowed []string) bool {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, a := range allowed {
		if a == contentType {
			return true
		}
	}
	return false
}
