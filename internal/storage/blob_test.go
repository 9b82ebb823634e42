package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrimacro/internal/config"
	apperrors "nutrimacro/internal/errors"
)

const azuriteKey = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="

func azuriteConnString(endpoint string) string {
	return "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=" + azuriteKey +
		";BlobEndpoint=" + endpoint + "/devstoreaccount1;"
}

// fakeAzurite serves a single blob. Requests for anything else get 404.
func fakeAzurite(t *testing.T, content string, present bool) (*httptest.Server, *int) {
	t.Helper()
	downloads := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !present || !strings.HasSuffix(r.URL.Path, "/datasets/All_Diets.csv") {
			w.Header().Set("x-ms-error-code", "BlobNotFound")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodHead:
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			downloads++
			w.Header().Set("Content-Type", "text/csv")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(content))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &downloads
}

func TestNewAzureBlobStore_MissingConnectionString(t *testing.T) {
	_, err := NewAzureBlobStore("", "datasets", "All_Diets.csv", Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	assert.Contains(t, err.Error(), "AzureWebJobsStorage is not set.")
}

func TestNewAzureBlobStore_InvalidConnectionString(t *testing.T) {
	_, err := NewAzureBlobStore("not a connection string", "datasets", "All_Diets.csv", Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestNewStoreFromConfig(t *testing.T) {
	cfg := config.Default().Storage
	store, err := NewStoreFromConfig(azuriteConnString("http://127.0.0.1:10000"), cfg)
	require.NoError(t, err)

	assert.Equal(t, "datasets", store.Container())
	assert.Equal(t, "All_Diets.csv", store.Name())
	assert.Equal(t, "http://127.0.0.1:10000/devstoreaccount1/datasets/All_Diets.csv", store.(*AzureBlobStore).URL())
}

func TestAzureBlobStore_ExistsAndDownload(t *testing.T) {
	srv, downloads := fakeAzurite(t, "Diet_type,Protein(g)\nvegan,10\n", true)

	store, err := NewAzureBlobStore(azuriteConnString(srv.URL), "datasets", "All_Diets.csv",
		Options{APIVersion: config.AzuriteAPIVersion})
	require.NoError(t, err)

	ctx := context.Background()
	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := store.Download(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Diet_type,Protein(g)\nvegan,10\n", string(data))
	assert.Equal(t, 1, *downloads)
}

func TestAzureBlobStore_ExistsMissingBlob(t *testing.T) {
	srv, downloads := fakeAzurite(t, "", false)

	store, err := NewAzureBlobStore(azuriteConnString(srv.URL), "datasets", "All_Diets.csv", Options{})
	require.NoError(t, err)

	ok, err := store.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, *downloads)
}

func TestAzureBlobStore_DownloadMissingBlob(t *testing.T) {
	srv, _ := fakeAzurite(t, "", false)

	store, err := NewAzureBlobStore(azuriteConnString(srv.URL), "datasets", "All_Diets.csv", Options{})
	require.NoError(t, err)

	_, err = store.Download(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, srv.URL+"/devstoreaccount1/datasets/All_Diets.csv", appErr.Context["url"])
}
