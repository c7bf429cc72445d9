package storage

import (
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// Uploader stores a file and returns a publicly reachable URL for it.
// Handlers depend on this interface so tests can swap in a stub.
type Uploader interface {
	Upload(folder, filename, contentType string, body io.Reader) (string, error)
}

// S3Uploader stores files in an S3 bucket under <folder>/<uuid><ext> keys.
type S3Uploader struct {
	bucket   string
	uploader *s3manager.Uploader
}

// NewS3Uploader builds an uploader from the default AWS credential chain.
func NewS3Uploader(region, bucket string) (*S3Uploader, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &S3Uploader{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Upload writes the body to S3 and returns the object URL. The original
// filename only contributes its extension, the key itself is a fresh UUID.
func (u *S3Uploader) Upload(folder, filename, contentType string, body io.Reader) (string, error) {
	key := path.Join(folder, uuid.NewString()+path.Ext(filename))
	out, err := u.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to s3: %w", key, err)
	}
	return out.Location, nil
}
