package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/hashicorp/golang-lru/simplelru"
)

// DefaultStoredCacheSize is how many stored names are remembered to skip
// repeated uploads.
const DefaultStoredCacheSize = 1000

type S3Interface interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Persist implements the persist.Persist interface for storing and loading
// blobs as S3 objects.
type Persist struct {
	s3         S3Interface
	BucketName string
	Prefix     string
	mu         sync.Mutex
	stored     *simplelru.LRU
}

// Load loads the bytes persisted in the named object.
func (p *Persist) Load(ctx context.Context, name string) ([]byte, error) {
	input := s3.GetObjectInput{
		Bucket: aws.String(p.BucketName),
		Key:    aws.String(p.Prefix + name),
	}
	output, err := p.s3.GetObjectWithContext(ctx, &input)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	defer output.Body.Close()
	b, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	p.remember(name)
	return b, nil
}

// Store persists the given bytes in an object of the given name, unless
// this Persist has already stored or loaded that name.
func (p *Persist) Store(ctx context.Context, name string, b []byte) error {
	p.mu.Lock()
	_, present := p.stored.Get(name)
	p.mu.Unlock()
	if present {
		return nil
	}
	input := s3.PutObjectInput{
		Bucket: aws.String(p.BucketName),
		Key:    aws.String(p.Prefix + name),
		Body:   bytes.NewReader(b),
	}
	_, err := p.s3.PutObjectWithContext(ctx, &input)
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	p.remember(name)
	return nil
}

func (p *Persist) remember(name string) {
	p.mu.Lock()
	p.stored.Add(name, nil)
	p.mu.Unlock()
}

// NewPersist returns a Persist that loads and stores blobs as objects
// with the given S3 client, bucket name and key prefix.
func NewPersist(client S3Interface, bucketName, prefix string) *Persist {
	lru, err := simplelru.NewLRU(DefaultStoredCacheSize, nil)
	if err != nil {
		panic(err)
	}
	return &Persist{
		s3:         client,
		BucketName: bucketName,
		Prefix:     prefix,
		stored:     lru,
	}
}
