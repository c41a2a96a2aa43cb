package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fhuszti/catalog-media-go/internal/usecase/media"
	"github.com/minio/minio-go/v7"
)

type mockMinio struct {
	bucketExistsFn func(ctx context.Context, bucketName string) (bool, error)
	makeBucketFn   func(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	statObjectFn   func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	getObjectFn    func(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	putObjectFn    func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

func (m *mockMinio) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return m.bucketExistsFn(ctx, bucketName)
}
func (m *mockMinio) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.makeBucketFn(ctx, bucketName, opts)
}
func (m *mockMinio) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return m.statObjectFn(ctx, bucket, key, opts)
}
func (m *mockMinio) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error) {
	return m.getObjectFn(ctx, bucketName, objectName, opts)
}
func (m *mockMinio) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return m.putObjectFn(ctx, bucketName, objectName, reader, objectSize, opts)
}

func TestInitBucket(t *testing.T) {
	tests := []struct {
		name           string
		exists         bool
		existsErr      error
		makeErr        error
		wantMakeCalled bool
		wantErr        error
	}{
		{name: "bucket exists, no create", exists: true},
		{name: "bucket does not exist, create succeeds", wantMakeCalled: true},
		{name: "BucketExists error is mapped", existsErr: errors.New("exist fail"), wantErr: media.ErrInternal},
		{name: "MakeBucket access denied", makeErr: minio.ErrorResponse{Code: "AccessDenied"}, wantMakeCalled: true, wantErr: media.ErrUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			makeCalled := false
			mock := &mockMinio{
				bucketExistsFn: func(ctx context.Context, bucketName string) (bool, error) {
					return tc.exists, tc.existsErr
				},
				makeBucketFn: func(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
					makeCalled = true
					if bucketName != "media" {
						t.Errorf("bucket = %q; want media", bucketName)
					}
					return tc.makeErr
				},
			}

			err := (&MinioStorage{client: mock, bucketName: "media"}).InitBucket(context.Background())
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v; want %v", err, tc.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if makeCalled != tc.wantMakeCalled {
				t.Errorf("MakeBucket called = %v; want %v", makeCalled, tc.wantMakeCalled)
			}
		})
	}
}

func TestStatFile(t *testing.T) {
	mock := &mockMinio{
		statObjectFn: func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
			if key == "products/missing" {
				return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
			}
			return minio.ObjectInfo{Size: 42, ContentType: "image/webp"}, nil
		},
	}
	s := &MinioStorage{client: mock, bucketName: "media"}

	info, err := s.StatFile(context.Background(), "products/abc")
	if err != nil {
		t.Fatalf("StatFile: %v", err)
	}
	if info.SizeBytes != 42 || info.ContentType != "image/webp" {
		t.Errorf("info = %+v", info)
	}

	if _, err := s.StatFile(context.Background(), "products/missing"); !errors.Is(err, media.ErrObjectNotFound) {
		t.Errorf("error = %v; want ErrObjectNotFound", err)
	}
}

func TestSaveFile(t *testing.T) {
	var gotKey, gotCT string
	var gotBody []byte
	mock := &mockMinio{
		putObjectFn: func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			gotKey, gotCT = objectName, opts.ContentType
			gotBody, _ = io.ReadAll(reader)
			return minio.UploadInfo{}, nil
		},
	}
	s := &MinioStorage{client: mock, bucketName: "media"}

	if err := s.SaveFile(context.Background(), "products/abc", bytes.NewReader([]byte("img")), 3, "image/png"); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if gotKey != "products/abc" || gotCT != "image/png" || string(gotBody) != "img" {
		t.Errorf("PutObject got key=%q ct=%q body=%q", gotKey, gotCT, gotBody)
	}

	mock.putObjectFn = func(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
		return minio.UploadInfo{}, minio.ErrorResponse{Code: "NoSuchBucket"}
	}
	if err := s.SaveFile(context.Background(), "k", bytes.NewReader(nil), 0, ""); !errors.Is(err, media.ErrBucketNotFound) {
		t.Errorf("error = %v; want ErrBucketNotFound", err)
	}
}

func TestGetFile_Error(t *testing.T) {
	mock := &mockMinio{
		getObjectFn: func(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error) {
			return nil, minio.ErrorResponse{Code: "NoSuchKey"}
		},
	}
	s := &MinioStorage{client: mock, bucketName: "media"}

	if _, err := s.GetFile(context.Background(), "products/abc"); !errors.Is(err, media.ErrObjectNotFound) {
		t.Errorf("error = %v; want ErrObjectNotFound", err)
	}
}

func TestMapMinioErr(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"NoSuchKey", media.ErrObjectNotFound},
		{"NoSuchBucket", media.ErrBucketNotFound},
		{"EntityTooLarge", media.ErrTooLarge},
		{"SignatureDoesNotMatch", media.ErrUnauthorized},
		{"SlowDown", media.ErrInternal},
	}
	for _, tt := range tests {
		if got := mapMinioErr(minio.ErrorResponse{Code: tt.code}); !errors.Is(got, tt.want) {
			t.Errorf("mapMinioErr(%s) = %v; want %v", tt.code, got, tt.want)
		}
	}
	if mapMinioErr(nil) != nil {
		t.Error("mapMinioErr(nil) should be nil")
	}
}
