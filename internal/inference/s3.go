package inference

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FetchArtifactsFromS3 downloads the model artifact files from an S3 bucket
// into dir, creating it if needed. Used at startup when the artifacts are
// published by the training pipeline rather than shipped with the binary.
func FetchArtifactsFromS3(ctx context.Context, bucket, prefix, dir string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(os.Getenv("AWS_REGION")),
	)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	for _, name := range ArtifactFiles {
		key := path.Join(prefix, name)
		if err := downloadObject(ctx, client, bucket, key, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("downloading %s: %w", key, err)
		}
		log.Printf("Fetched model artifact s3://%s/%s", bucket, key)
	}
	return nil
}

func downloadObject(ctx context.Context, client *s3.Client, bucket, key, dest string) error {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return err
	}
	defer out.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return err
	}
	return nil
}
