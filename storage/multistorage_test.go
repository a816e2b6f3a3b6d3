package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/certchain/certificate-registry-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContentStore implements interfaces.ContentStore for testing
type MockContentStore struct {
	mock.Mock
	name string
}

func (m *MockContentStore) Put(ctx context.Context, data []byte, mediaType string) (interfaces.ContentID, error) {
	args := m.Called(ctx, data, mediaType)
	return args.Get(0).(interfaces.ContentID), args.Error(1)
}

func (m *MockContentStore) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockContentStore) Exists(ctx context.Context, id interfaces.ContentID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentStore) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockContentStore) Name() string {
	return m.name
}

func (m *MockContentStore) LocationURI() string {
	return "mock:"
}

func TestMultiStore_Available(t *testing.T) {
	tests := []struct {
		name     string
		backends []bool
		expected bool
	}{
		{
			name:     "all backends available",
			backends: []bool{true, true, true},
			expected: true,
		},
		{
			name:     "some backends available",
			backends: []bool{false, true, false},
			expected: true,
		},
		{
			name:     "no backends available",
			backends: []bool{false, false, false},
			expected: false,
		},
		{
			name:     "no backends",
			backends: []bool{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var backends []interfaces.ContentStore
			for i, available := range tt.backends {
				mockStore := &MockContentStore{name: fmt.Sprintf("mock-%d", i)}
				mockStore.On("Available", mock.Anything).Return(available).Maybe()
				backends = append(backends, mockStore)
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			multi := NewMultiStore(backends, logger)

			result := multi.Available(context.Background())
			assert.Equal(t, tt.expected, result)

			for _, backend := range backends {
				mockStore := backend.(*MockContentStore)
				mockStore.AssertExpectations(t)
			}
		})
	}
}

func TestMultiStore_Get(t *testing.T) {
	testID := interfaces.ContentID("QmTestContentIdentifier")
	testData := []byte("certificate document")
	testErr := errors.New("test error")

	tests := []struct {
		name          string
		setupMocks    func() []interfaces.ContentStore
		expectedData  []byte
		expectedError error
	}{
		{
			name: "first backend successful",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Get", mock.Anything, testID).Return(testData, nil)

				mock2 := &MockContentStore{name: "mock-B"}
				// Not called, the first backend succeeds

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedData: testData,
		},
		{
			name: "first backend fails, second succeeds",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Get", mock.Anything, testID).Return(nil, testErr)

				mock2 := &MockContentStore{name: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Get", mock.Anything, testID).Return(testData, nil)

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedData: testData,
		},
		{
			name: "content missing everywhere",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Get", mock.Anything, testID).Return(nil, interfaces.ErrNotFound)

				mock2 := &MockContentStore{name: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Get", mock.Anything, testID).Return(nil, interfaces.ErrNotFound)

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedError: interfaces.ErrNotFound,
		},
		{
			name: "unavailable backends are skipped",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(false)
				// Get must not be called

				mock2 := &MockContentStore{name: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Get", mock.Anything, testID).Return(testData, nil)

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedData: testData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends := tt.setupMocks()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			multi := NewMultiStore(backends, logger)

			data, err := multi.Get(context.Background(), testID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedData, data)

			for _, backend := range backends {
				backend.(*MockContentStore).AssertExpectations(t)
			}
		})
	}
}

func TestMultiStore_Put(t *testing.T) {
	testID := interfaces.ContentID("QmTestContentIdentifier")
	testData := []byte("certificate document")
	testErr := errors.New("test error")
	mediaType := "application/pdf"

	tests := []struct {
		name          string
		setupMocks    func() []interfaces.ContentStore
		expectedID    interfaces.ContentID
		expectedError error
	}{
		{
			name: "all backends successful",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Put", mock.Anything, testData, mediaType).Return(testID, nil)

				mock2 := &MockContentStore{name: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Put", mock.Anything, testData, mediaType).Return(testID, nil)

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedID: testID,
		},
		{
			name: "replica failure is tolerated",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Put", mock.Anything, testData, mediaType).Return(testID, nil)

				mock2 := &MockContentStore{name: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Put", mock.Anything, testData, mediaType).Return(interfaces.ContentID(""), testErr)

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedID: testID,
		},
		{
			name: "all backends fail",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Put", mock.Anything, testData, mediaType).Return(interfaces.ContentID(""), testErr)

				mock2 := &MockContentStore{name: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Put", mock.Anything, testData, mediaType).Return(interfaces.ContentID(""), testErr)

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedID:    interfaces.ContentID(""),
			expectedError: interfaces.ErrStorageUnavailable,
		},
		{
			name: "unavailable backends are skipped",
			setupMocks: func() []interfaces.ContentStore {
				mock1 := &MockContentStore{name: "mock-A"}
				mock1.On("Available", mock.Anything).Return(false)
				// Put must not be called

				mock2 := &MockContentStore{name: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Put", mock.Anything, testData, mediaType).Return(testID, nil)

				return []interfaces.ContentStore{mock1, mock2}
			},
			expectedID: testID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends := tt.setupMocks()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			multi := NewMultiStore(backends, logger)

			id, err := multi.Put(context.Background(), testData, mediaType)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedID, id)

			for _, backend := range backends {
				backend.(*MockContentStore).AssertExpectations(t)
			}
		})
	}
}

func TestMultiStore_Exists(t *testing.T) {
	testID := interfaces.ContentID("QmTestContentIdentifier")

	mock1 := &MockContentStore{name: "mock-A"}
	mock1.On("Available", mock.Anything).Return(true)
	mock1.On("Exists", mock.Anything, testID).Return(false, nil)

	mock2 := &MockContentStore{name: "mock-B"}
	mock2.On("Available", mock.Anything).Return(true)
	mock2.On("Exists", mock.Anything, testID).Return(true, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	multi := NewMultiStore([]interfaces.ContentStore{mock1, mock2}, logger)

	exists, err := multi.Exists(context.Background(), testID)
	assert.NoError(t, err)
	assert.True(t, exists)
}
