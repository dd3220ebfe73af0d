package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	sc "github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploaded avatars live in object storage; the user record stores the key
// behind this prefix to distinguish it from a derived URL.
const storedAvatarPrefix = "s3:"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AvatarService handles custom avatar uploads: it hands out presigned PUT
// URLs for an S3-compatible backend, records claimed uploads on the user
// record, and resolves stored avatars to presigned GET URLs.
type AvatarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewAvatarService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AvatarService {
	return &AvatarService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

func avatarStorageKey(userID string) string {
	return fmt.Sprintf("avatars/%s/%v", userID, uuid.New())
}

func (s *AvatarService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// NewUploadURL allocates a storage key under the user's prefix and returns
// it with a presigned PUT URL the client uploads to directly.
func (s *AvatarService) NewUploadURL(ctx context.Context, userID string) (string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := avatarStorageKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))

	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// Claim records an uploaded key as the user's avatar. The key must sit under
// the claiming user's own prefix; the existence check and the update run in
// one transaction.
func (s *AvatarService) Claim(ctx context.Context, userID, key string) error {
	if !strings.HasPrefix(key, "avatars/"+userID+"/") {
		return common.ErrInvalidStorageKey
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if _, err := repo.GetByID(ctx, userID); err != nil {
			return err
		}
		return repo.UpdateAvatar(ctx, userID, storedAvatarPrefix+key)
	})
}

// DownloadURL resolves the user's avatar reference. Derived avatars
// (gravatar URLs, empty references) pass through unchanged; stored uploads
// come back as presigned GET URLs.
func (s *AvatarService) DownloadURL(ctx context.Context, userID string) (string, error) {

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(user.Avatar, storedAvatarPrefix) {
		return user.Avatar, nil
	}
	key := strings.TrimPrefix(user.Avatar, storedAvatarPrefix)

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
