package storage

import (
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	log "github.com/sirupsen/logrus"
)

const presignDuration = 6 * time.Hour

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // empty for AWS
	Key      string
	Secret   string
	Prefix   string
}

type S3Storage struct {
	config   S3Config
	s3Client *s3.S3
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	awsConfig := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	if cfg.Key != "" {
		awsConfig = awsConfig.WithCredentials(credentials.NewStaticCredentials(cfg.Key, cfg.Secret, ""))
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}
	return &S3Storage{
		config:   cfg,
		s3Client: s3.New(sess),
	}, nil
}

func (s *S3Storage) remotePath(path string) (string, error) {
	cleaned, err := cleanPath(path)
	if err != nil {
		return "", err
	}
	return s.config.Prefix + cleaned, nil
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}

func (s *S3Storage) Save(path string, reader io.Reader, mimeType string) (int64, error) {
	key, err := s.remotePath(path)
	if err != nil {
		return 0, err
	}
	body := &countingReader{Reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
		Body:        body,
	})
	return body.n, err
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	key, err := s.remotePath(path)
	if err != nil {
		return 0, err
	}
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

func (s *S3Storage) Delete(path string) error {
	key, err := s.remotePath(path)
	if err != nil {
		return err
	}
	_, err = s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// Serve redirects to a presigned URL, the object never passes through us
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	url := s.URL(path)
	if url == "" {
		http.NotFound(writer, request)
		return
	}
	http.Redirect(writer, request, url, http.StatusFound)
}

func (s *S3Storage) URL(path string) string {
	key, err := s.remotePath(path)
	if err != nil {
		return ""
	}
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(presignDuration)
	if err != nil {
		log.Errorf("[S3Storage] cannot presign %s: %v", key, err)
		return ""
	}
	return url
}
