package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"learnloop/internal/pkg/logx"
)

// s3SourceConfig holds the settings needed to read the catalog object from
// S3-compatible storage.
type s3SourceConfig struct {
	BucketName      string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ObjectKey       string
}

// s3Source fetches the catalog object from S3-compatible storage, where the
// production deployment hosts its static data files.
type s3Source struct {
	cfg        s3SourceConfig
	downloader *manager.Downloader
}

// newS3Source initializes the S3 client using a custom configuration that
// supports S3-compatible endpoints.
func newS3Source(cfg s3SourceConfig) (*s3Source, error) {
	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		logx.Error(err, "Failed to load AWS SDK config for catalog source")
		return nil, errors.New("failed to initialize catalog storage client")
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &s3Source{
		cfg:        cfg,
		downloader: manager.NewDownloader(client),
	}, nil
}

// Fetch downloads and decodes the catalog object.
func (s *s3Source) Fetch(ctx context.Context) (Catalog, error) {
	buf := manager.NewWriteAtBuffer(nil)

	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: &s.cfg.BucketName,
		Key:    &s.cfg.ObjectKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download skill catalog object %q: %w", s.cfg.ObjectKey, err)
	}

	var c Catalog
	if err := json.Unmarshal(buf.Bytes(), &c); err != nil {
		return nil, fmt.Errorf("failed to decode skill catalog object: %w", err)
	}

	return c, nil
}
