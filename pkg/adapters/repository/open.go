// Package repository selects and constructs the configured storage backend.
package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	goredis "github.com/redis/go-redis/v9"

	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/repository/dynamodb"
	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/repository/file"
	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/repository/redis"
	"github.com/wadjakorntonsri/seo-redirects/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/seo-redirects/pkg/config"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverDynamoDB = "dynamodb"
	DriverRedis    = "redis"
)

// Open returns the repository named by cfg.StorageDriver. An empty driver
// means the local JSON file.
func Open(ctx context.Context, cfg *config.Config) (ports.RedirectRepository, error) {
	switch cfg.StorageDriver {
	case DriverFile, "":
		return file.NewFileRepository(cfg.DataFile), nil
	case DriverSQLite:
		repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return repo, nil
	case DriverDynamoDB:
		client, err := newDynamoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return dynamodb.NewDynamoRepository(client, cfg.DynamoTable), nil
	case DriverRedis:
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return redis.NewRedisRepository(client, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newDynamoClient(ctx context.Context, cfg *config.Config) (*awsdynamodb.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	}), nil
}
