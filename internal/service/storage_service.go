package service

import (
	"bytes"
	"context"
	"dating_app_backend/internal/config"
	"dating_app_backend/internal/util"
	"dating_app_backend/pkg/logger"
	"dating_app_backend/pkg/monitoring"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 对象存储后端
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	GetURL(key string) string
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

// LocalStorageProvider 本地磁盘，由路由在 /uploads 下提供静态访问
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

// NewLocalStorageProvider 未配置 public_base_url 时以本机服务地址生成绝对 URL
func NewLocalStorageProvider(cfg *config.Config) *LocalStorageProvider {
	storage := cfg.Storage
	if storage.PublicBaseURL == "" {
		port := cfg.Server.Port
		if port == "" {
			port = "5000"
		}
		storage.PublicBaseURL = "http://localhost:" + port
	}
	return &LocalStorageProvider{Config: &storage}
}

func (p *LocalStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *LocalStorageProvider) GetURL(key string) string {
	return joinURL(p.Config.PublicBaseURL, path.Join("uploads", key))
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if size <= 0 {
		size = -1
	}
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *MinioStorageProvider) GetURL(key string) string {
	if p.Config.PublicBaseURL != "" {
		return joinURL(p.Config.PublicBaseURL, key)
	}
	scheme := "http"
	if p.Config.MinioSecure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.Config.MinioEndpoint, p.Config.MinioBucket, key)
}

// OSSStorageProvider 阿里云 OSS
type OSSStorageProvider struct {
	Config *config.StorageConfig
	Bucket *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := p.Bucket.PutObject(key, reader, oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *OSSStorageProvider) GetURL(key string) string {
	if p.Config.PublicBaseURL != "" {
		return joinURL(p.Config.PublicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, key)
}

// S3StorageProvider AWS S3，未配置访问密钥时走默认凭证链
type S3StorageProvider struct {
	Config *config.StorageConfig
	Client *s3.Client
}

func NewS3StorageProvider(ctx context.Context, cfg *config.StorageConfig) (*S3StorageProvider, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			awscredentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &S3StorageProvider{Config: cfg, Client: s3.NewFromConfig(awsCfg)}, nil
}

func (p *S3StorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	// 签名需要可重读的 body，图片大小已受限，直接读入内存
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	_, err = p.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.Config.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(key), nil
}

func (p *S3StorageProvider) GetURL(key string) string {
	if p.Config.PublicBaseURL != "" {
		return joinURL(p.Config.PublicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.Config.S3Bucket, p.Config.S3Region, key)
}

// StorageService 图片上传中转
type StorageService struct {
	Provider StorageProvider
	MaxBytes int64
}

func NewStorageService(ctx context.Context, cfg *config.Config) (*StorageService, error) {
	var (
		provider StorageProvider
		err      error
	)

	switch cfg.Storage.Type {
	case util.StorageMinio:
		provider, err = NewMinioStorageProvider(&cfg.Storage)
	case util.StorageOSS:
		provider, err = NewOSSStorageProvider(&cfg.Storage)
	case util.StorageS3:
		provider, err = NewS3StorageProvider(ctx, &cfg.Storage)
	case util.StorageLocal, "":
		provider = NewLocalStorageProvider(cfg)
	default:
		err = fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", cfg.Storage.Type, err)
	}

	return &StorageService{Provider: provider, MaxBytes: cfg.Storage.MaxImageBytes}, nil
}

// UploadImage 校验声明类型与实际内容均为图片后上传，返回公开地址
func (s *StorageService) UploadImage(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType != "" && contentType != util.MimeOctetStream && !util.IsImage(contentType) {
		monitoring.UploadCounter.WithLabelValues("rejected").Inc()
		return "", util.ErrUnsupportedType
	}

	sniffed, rest, err := util.ValidateMimeType(reader, []string{util.MimeImage})
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedType) {
			monitoring.UploadCounter.WithLabelValues("rejected").Inc()
			return "", util.ErrUnsupportedType
		}
		monitoring.UploadCounter.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := path.Join(util.ImageFolder, uuid.New().String()+util.ImageExtension(filename, sniffed))
	url, err := s.Provider.Upload(ctx, key, rest, size, sniffed)
	if err != nil {
		monitoring.UploadCounter.WithLabelValues("failed").Inc()
		logger.Log.Error("Image upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}

	monitoring.UploadCounter.WithLabelValues("ok").Inc()
	logger.Log.Info("Image uploaded", zap.String("key", key), zap.Int64("size", size))
	return url, nil
}
