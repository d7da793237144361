package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockSink is a mock implementation of the Sink interface for testing.
type mockSink struct {
	saveFunc func(ctx context.Context, name string, data []byte) (string, error)
}

func (m *mockSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, name, data)
	}
	return "", errors.New("not implemented")
}

// MockS3Client is a mock implementation of putObjectAPI.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestFileSink_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := NewFileSink(dir, zerolog.Nop())

	path, err := sink.Save(context.Background(), ReservationsFile, []byte("id,customer_name\n"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReservationsFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,customer_name\n", string(data))
}

func TestFileSink_SaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir, zerolog.Nop())

	path, err := sink.Save(context.Background(), "../../etc/"+NewsletterFile, []byte("id,email,signup_date\n"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, NewsletterFile), path)
}

func TestFileSink_SaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSink(t.TempDir(), zerolog.Nop()).Save(ctx, ReservationsFile, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestS3Sink_Save(t *testing.T) {
	var input *s3.PutObjectInput
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { input = args.Get(1).(*s3.PutObjectInput) }).
		Return(&s3.PutObjectOutput{}, nil)

	sink := newS3Sink(client, "restaurant-exports", "exports/", zerolog.Nop())

	location, err := sink.Save(context.Background(), ReservationsFile, []byte("id\n1\n"))

	require.NoError(t, err)
	assert.Equal(t, "s3://restaurant-exports/exports/reservations.csv", location)
	client.AssertExpectations(t)

	require.NotNil(t, input)
	assert.Equal(t, "restaurant-exports", aws.ToString(input.Bucket))
	assert.Equal(t, "exports/reservations.csv", aws.ToString(input.Key))
	assert.Equal(t, "text/csv", aws.ToString(input.ContentType))
	body, err := io.ReadAll(input.Body)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(body))
}

func TestS3Sink_SaveError(t *testing.T) {
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	sink := newS3Sink(client, "restaurant-exports", "", zerolog.Nop())

	_, err := sink.Save(context.Background(), NewsletterFile, []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Contains(t, err.Error(), "key=newsletter_signups.csv")
}

func TestFallbackSink_S3Success(t *testing.T) {
	remote := &mockSink{saveFunc: func(ctx context.Context, name string, data []byte) (string, error) {
		return "s3://bucket/exports/" + name, nil
	}}
	file := &mockSink{saveFunc: func(ctx context.Context, name string, data []byte) (string, error) {
		t.Error("file sink should not be called when S3 succeeds")
		return "", errors.New("should not be called")
	}}

	location, err := NewFallbackSink(remote, file, true, zerolog.Nop()).Save(context.Background(), ReservationsFile, []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/exports/reservations.csv", location)
}

func TestFallbackSink_S3FailsFallsBackToFile(t *testing.T) {
	remote := &mockSink{saveFunc: func(ctx context.Context, name string, data []byte) (string, error) {
		return "", errors.New("S3 connection failed")
	}}
	file := &mockSink{saveFunc: func(ctx context.Context, name string, data []byte) (string, error) {
		return "/tmp/" + name, nil
	}}

	location, err := NewFallbackSink(remote, file, true, zerolog.Nop()).Save(context.Background(), ReservationsFile, []byte("x"))

	require.NoError(t, err)
	assert.Equal(t, "/tmp/reservations.csv", location)
}

func TestFallbackSink_S3Disabled(t *testing.T) {
	remote := &mockSink{saveFunc: func(ctx context.Context, name string, data []byte) (string, error) {
		t.Error("S3 sink should not be called when disabled")
		return "", nil
	}}
	file := &mockSink{saveFunc: func(ctx context.Context, name string, data []byte) (string, error) {
		return "/tmp/" + name, nil
	}}

	tests := []struct {
		name    string
		s3      Sink
		enabled bool
	}{
		{name: "disabled", s3: remote, enabled: false},
		{name: "no S3 sink", s3: nil, enabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location, err := NewFallbackSink(tt.s3, file, tt.enabled, zerolog.Nop()).Save(context.Background(), NewsletterFile, nil)

			require.NoError(t, err)
			assert.Equal(t, "/tmp/newsletter_signups.csv", location)
		})
	}
}
