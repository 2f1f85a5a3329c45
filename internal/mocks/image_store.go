package mocks

import (
	"context"
	"io"
)

// MockImageStore implements service.ImageStore for testing
type MockImageStore struct {
	// UploadFn allows test cases to mock the Upload behavior
	UploadFn func(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, key string) error

	// ExistsFn allows test cases to mock the Exists behavior
	ExistsFn func(ctx context.Context, key string) (bool, error)

	// Uploaded and Deleted record the keys passed to the default
	// implementations, in call order
	Uploaded []string
	Deleted  []string

	// Missing marks keys the default Exists reports as absent
	Missing map[string]bool

	// UploadErr, DeleteErr and ExistsErr back the default implementations
	UploadErr error
	DeleteErr error
	ExistsErr error
}

// Upload implements the service.ImageStore interface
func (m *MockImageStore) Upload(
	ctx context.Context,
	key string,
	reader io.Reader,
	size int64,
	contentType string,
) error {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, key, reader, size, contentType)
	}

	if m.UploadErr != nil {
		return m.UploadErr
	}
	m.Uploaded = append(m.Uploaded, key)
	return nil
}

// Delete implements the service.ImageStore interface
func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, key)
	return nil
}

// Exists implements the service.ImageStore interface. By default every
// key exists unless listed in Missing.
func (m *MockImageStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, key)
	}

	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	return !m.Missing[key], nil
}
