package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage działa z dowolnym serwisem zgodnym z S3 (MinIO przez
// BaseEndpoint). Foldery nie mają fizycznego odpowiednika - tylko prefiksy
// kluczy per użytkownik.
type S3Storage struct {
	client   *s3.Client
	endpoint string
	bucket   string
}

func NewS3Storage(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &S3Storage{
		client:   client,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		bucket:   bucket,
	}, nil
}

func (s *S3Storage) NewFileKey(ownerID int64, folderID *string, originalName string) (string, error) {
	prefix := "root"
	if folderID != nil {
		prefix = *folderID
	}
	return fmt.Sprintf("%d/%s/%d-%s", ownerID, prefix, time.Now().UnixMilli(), sanitizeFilename(originalName)), nil
}

// sanitizeFilename zastępuje wszystko spoza [A-Za-z0-9.-] podkreśleniem.
func sanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (s *S3Storage) Save(ctx context.Context, key string, data io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3Storage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// Hierarchia w S3 jest czysto logiczna, więc nie ma czego tworzyć ani usuwać.
func (s *S3Storage) ProvisionFolder(ctx context.Context, folderID string) error {
	return nil
}

func (s *S3Storage) RemoveFolderTree(ctx context.Context, folderID string) error {
	return nil
}

// PublicURL jest wyliczany raz przy uploadzie i zapisywany w metadanych;
// późniejsza zmiana endpointu nie odświeża zapisanych linków.
func (s *S3Storage) PublicURL(key string) (string, bool) {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), true
}
