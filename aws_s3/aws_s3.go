package aws_s3

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/edumesh/Backend_ELearning/settings"
	"github.com/google/uuid"
)

var settingsData = settings.GetSettings()
var awsS3 *AWSS3

type AWSS3 struct {
	sess *session.Session
}

func newSession() *session.Session {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(settingsData.AWS_REGION),
	})
	if err != nil {
		panic(err)
	}
	return sess
}

type UploadResult struct {
	Key      string
	Location string
}

// UploadFile stores a multipart file under folder/uuid.ext
func (a *AWSS3) UploadFile(file *multipart.FileHeader, folder string) (*UploadResult, error) {
	opened, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer opened.Close()

	key := fmt.Sprintf(
		"%s/%s%s",
		folder,
		uuid.New().String(),
		filepath.Ext(file.Filename),
	)
	uploader := s3manager.NewUploader(a.sess)
	result, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(settingsData.AWS_BUCKET),
		Key:         aws.String(key),
		Body:        opened,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Key:      key,
		Location: result.Location,
	}, nil
}

// UploadBytes stores raw content, used for generated files like certificates
func (a *AWSS3) UploadBytes(content io.ReadSeeker, key, contentType string) (string, error) {
	uploader := s3manager.NewUploader(a.sess)
	result, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(settingsData.AWS_BUCKET),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}

func (a *AWSS3) GetFile(key string) (io.ReadCloser, error) {
	svc := s3.New(a.sess)
	object, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(settingsData.AWS_BUCKET),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return object.Body, nil
}

func (a *AWSS3) DeleteFile(key string) error {
	svc := s3.New(a.sess)
	_, err := svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(settingsData.AWS_BUCKET),
		Key:    aws.String(key),
	})
	return err
}

func NewAWSS3() *AWSS3 {
	if awsS3 == nil {
		awsS3 = &AWSS3{
			sess: newSession(),
		}
	}
	return awsS3
}
