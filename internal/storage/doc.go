// Package storage reads the input dataset from Azure Blob Storage, or from
// the Azurite emulator when the connection string points at it.
//
// A BlobStore is bound to one container/blob pair and is built fresh for
// every invocation:
//
//	store, err := storage.NewAzureBlobStore(connStr, "datasets", "All_Diets.csv", storage.Options{APIVersion: "2021-12-02"})
//	if err != nil {
//	    return err
//	}
//	ok, err := store.Exists(ctx)
//
// Missing blobs and containers are reported by Exists as false, never as errors.
package storage
