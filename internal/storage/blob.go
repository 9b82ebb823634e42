package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"nutrimacro/internal/config"
	apperrors "nutrimacro/internal/errors"
)

// BlobStore is a single named blob inside a container
type BlobStore interface {
	Exists(ctx context.Context) (bool, error)
	Download(ctx context.Context) ([]byte, error)
	Container() string
	Name() string
}

// StoreFactory builds a BlobStore from a connection string
type StoreFactory func(connStr string, cfg config.StorageConfig) (BlobStore, error)

// Options tune the underlying SDK client
type Options struct {
	// APIVersion pins the x-ms-version header. Azurite lags behind the
	// service so it must be set when talking to the emulator.
	APIVersion string
	// Transport replaces the HTTP client, mainly for tests
	Transport *http.Client
}

// AzureBlobStore implements BlobStore on the Azure SDK
type AzureBlobStore struct {
	container string
	name      string
	client    *blob.Client
}

// NewAzureBlobStore creates a store for container/name from a connection string
func NewAzureBlobStore(connStr, container, name string, opts Options) (*AzureBlobStore, error) {
	if connStr == "" {
		return nil, apperrors.NewConfigError(config.DefaultConnectionStringEnv+" is not set.", nil)
	}

	clientOpts := &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			APIVersion: opts.APIVersion,
		},
	}
	if opts.Transport != nil {
		clientOpts.Transport = opts.Transport
	}

	client, err := azblob.NewClientFromConnectionString(connStr, clientOpts)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid storage connection string", err)
	}

	return &AzureBlobStore{
		container: container,
		name:      name,
		client:    client.ServiceClient().NewContainerClient(container).NewBlobClient(name),
	}, nil
}

// NewStoreFromConfig is the default StoreFactory
func NewStoreFromConfig(connStr string, cfg config.StorageConfig) (BlobStore, error) {
	return NewAzureBlobStore(connStr, cfg.Container, cfg.Blob, Options{APIVersion: cfg.APIVersion})
}

// Container returns the container name
func (s *AzureBlobStore) Container() string { return s.container }

// Name returns the blob name
func (s *AzureBlobStore) Name() string { return s.name }

// URL returns the blob URL
func (s *AzureBlobStore) URL() string { return s.client.URL() }

// Exists checks the blob properties. A missing blob or container is not an error.
func (s *AzureBlobStore) Exists(ctx context.Context) (bool, error) {
	_, err := s.client.GetProperties(ctx, nil)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, apperrors.NewStorageError(
		fmt.Sprintf("failed to get properties of blob '%s' in container '%s'", s.name, s.container), err).
		WithContext("url", s.URL())
}

// Download reads the whole blob into memory
func (s *AzureBlobStore) Download(ctx context.Context) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, nil)
	if err != nil {
		return nil, apperrors.NewStorageError(
			fmt.Sprintf("failed to download blob '%s' from container '%s'", s.name, s.container), err).
			WithContext("url", s.URL())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read blob content", err)
	}
	return data, nil
}

func isNotFound(err error) bool {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound, bloberror.ResourceNotFound) {
		return true
	}
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
