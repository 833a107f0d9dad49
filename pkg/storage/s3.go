package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectAPI is the part of *s3.Client the mirror uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Mirror uploads catalog snapshots to a bucket.
type Mirror struct {
	client objectAPI
	cfg    Config
}

// New creates a Mirror backed by an S3 client built from cfg.
func New(cfg Config) (*Mirror, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &Mirror{client: s3.New(s3.Options{}, opts...), cfg: cfg}, nil
}

// Bucket returns the configured bucket.
func (m *Mirror) Bucket() string {
	return m.cfg.Bucket
}

// Put uploads data as the latest object for the catalog at path and, with
// KeepHistory, as a new history object.
func (m *Mirror) Put(ctx context.Context, path string, data []byte) (Snapshot, error) {
	snap := Snapshot{Latest: m.latestKey(path), Size: int64(len(data))}

	if m.cfg.KeepHistory {
		key, err := m.historyKey(path)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: history key: %v", ErrUploadFailed, err)
		}
		if err := m.put(ctx, key, data); err != nil {
			return Snapshot{}, err
		}
		snap.History = key
	}

	if err := m.put(ctx, snap.Latest, data); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Commit has the shape of a store commit hook. The upload is bounded by the
// configured Timeout.
func (m *Mirror) Commit(ctx context.Context, path string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()
	_, err := m.Put(ctx, path, data)
	return err
}

// Latest downloads the most recent snapshot of the catalog at path.
func (m *Mirror) Latest(ctx context.Context, path string) ([]byte, error) {
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(m.latestKey(path)),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrDownloadFailed)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return data, nil
}

func (m *Mirror) put(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType),
	})
	if err != nil {
		return wrapS3Error(err, ErrUploadFailed)
	}
	return nil
}
