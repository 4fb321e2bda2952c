package infra

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient sube fotos de productos y de órdenes al object storage.
// Thin wrapper: cualquier error se propaga tal cual al servicio.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(storageURL, serviceKey, bucket string) *StorageClient {
	baseURL := strings.TrimSuffix(storageURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// SubirImagenProducto uploads image bytes under productos/{id}/ and returns
// (path, public URL).
func (s *StorageClient) SubirImagenProducto(productoID uint, filename, contentType string, data []byte) (string, string, error) {
	path := fmt.Sprintf("productos/%d/%s-%s", productoID, uuid.New().String()[:8], filename)

	upsert := true
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("storage: upload: %w", err)
	}

	return path, s.PublicURL(path), nil
}

// PublicURL builds the public object URL for a stored path.
func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// EliminarImagen removes a stored object.
func (s *StorageClient) EliminarImagen(path string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{path})
	return err
}
