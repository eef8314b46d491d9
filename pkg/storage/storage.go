package storage

import "context"

type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
	Delete(ctx context.Context, bucket, fileName string) error
}

type UploadObject struct {
	Bucket   string
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

type UploadResponse struct {
	Url      string
	FileName string
}

// NewMockStorage returns a Storage for tests that accepts every upload.
func NewMockStorage() *mockStorage {
	return &mockStorage{}
}

type mockStorage struct{}

func (s *mockStorage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	return &UploadResponse{
		Url:      "https://storage.example.com/" + object.FileName,
		FileName: object.FileName,
	}, nil
}

func (s *mockStorage) Delete(ctx context.Context, bucket, fileName string) error {
	return nil
}
