package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "reports/run/file.csv", want: "reports/run/file.csv"},
		{name: "simple prefix", prefix: "root", key: "reports/file.csv", want: "root/reports/file.csv"},
		{name: "prefix trailing slash", prefix: "root/", key: "reports/file.csv", want: "root/reports/file.csv"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/reports/file.csv", want: "root/reports/file.csv"},
		{name: "nested prefix", prefix: "root/sub", key: "reports/file.csv", want: "root/sub/reports/file.csv"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type fakeS3 struct {
	objects map[string][]byte
	lastPut *s3.PutObjectInput
	putErr  error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = body
	f.lastPut = params
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestPutSniffsContentTypeAndEncrypts(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := &Store{client: fake, bucket: "bucket", prefix: "pfx"}

	n, err := store.Put(context.Background(), "reports/run-1/resume_ranking_report.pdf", "", strings.NewReader("%PDF-1.3 body"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("%PDF-1.3 body")) {
		t.Fatalf("unexpected size: %d", n)
	}
	if got := aws.ToString(fake.lastPut.ContentType); got != "application/pdf" {
		t.Fatalf("unexpected content type: %s", got)
	}
	if fake.lastPut.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256 encryption, got %s", fake.lastPut.ServerSideEncryption)
	}

	rc, err := store.Open(context.Background(), "reports/run-1/resume_ranking_report.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "%PDF-1.3 body" {
		t.Fatalf("unexpected body: %q", body)
	}
	if _, ok := fake.objects["pfx/reports/run-1/resume_ranking_report.pdf"]; !ok {
		t.Fatalf("expected prefixed key to be written")
	}
}

func TestPutUsesKMSWhenConfigured(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := &Store{client: fake, bucket: "bucket", kmsKeyID: "kms-1"}

	if _, err := store.Put(context.Background(), "a.csv", "text/csv", strings.NewReader("Resume,Score\n")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if fake.lastPut.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected kms encryption")
	}
	if aws.ToString(fake.lastPut.SSEKMSKeyId) != "kms-1" {
		t.Fatalf("unexpected kms key id")
	}
	if aws.ToString(fake.lastPut.ContentType) != "text/csv" {
		t.Fatalf("expected explicit content type")
	}
}

func TestPutWrapsError(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, putErr: errors.New("boom")}
	store := &Store{client: fake, bucket: "bucket"}
	_, err := store.Put(context.Background(), "a.csv", "text/csv", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "s3 put object bucket=bucket key=a.csv") {
		t.Fatalf("unexpected error: %v", err)
	}
}
