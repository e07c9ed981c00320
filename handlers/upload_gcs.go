package handlers

import (
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
)

func gcsBucket() string {
	return os.Getenv("GCS_BUCKET")
}

// storeGCS writes the bytes to the configured bucket. The metadata row is
// only created after this returns, so a half-written object never has a
// database record pointing at it.
func storeGCS(ctx context.Context, storageKey string, data []byte, mime string) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	writer := client.Bucket(gcsBucket()).Object(storageKey).NewWriter(ctx)
	writer.ContentType = mime
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

// readGCS loads stored bytes back from the bucket.
func readGCS(ctx context.Context, storageKey string) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	reader, err := client.Bucket(gcsBucket()).Object(storageKey).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
