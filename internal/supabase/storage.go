package supabase

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

const listPageSize = 1000

// StorageClient stores generated image payloads in a Supabase Storage bucket.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) *StorageClient {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// ProjectPrefix is the folder holding every asset of a project.
func ProjectPrefix(userID, projectID string) string {
	return fmt.Sprintf("users/%s/projects/%s", userID, projectID)
}

// GenerationPrefix is the folder holding the assets of one generation.
func GenerationPrefix(userID, projectID, generationID string) string {
	return ProjectPrefix(userID, projectID) + "/" + generationID
}

// AssetPath is users/{uid}/projects/{pid}/{genId}/{filename}.
func AssetPath(userID, projectID, generationID, filename string) string {
	return GenerationPrefix(userID, projectID, generationID) + "/" + path.Base(filename)
}

// Upload writes data to storagePath, replacing any existing object, and
// returns its public URL.
func (s *StorageClient) Upload(storagePath, contentType string, data []byte) (string, error) {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(storagePath), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

// PathFromURL reverses PublicURL. It reports false for URLs outside the bucket.
func (s *StorageClient) PathFromURL(publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, prefix), true
}

func (s *StorageClient) Remove(storagePaths ...string) error {
	if len(storagePaths) == 0 {
		return nil
	}
	if _, err := s.client.RemoveFile(s.bucket, storagePaths); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}

// RemovePrefix deletes every object below prefix.
func (s *StorageClient) RemovePrefix(prefix string) error {
	paths, err := s.list(strings.TrimSuffix(prefix, "/"))
	if err != nil {
		return err
	}
	return s.Remove(paths...)
}

// list walks the folder tree under prefix. Storage lists one level at a
// time; folders come back without an id.
func (s *StorageClient) list(prefix string) ([]string, error) {
	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: listPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var paths []string
	for _, file := range files {
		full := prefix + "/" + file.Name
		if file.Id == "" {
			nested, err := s.list(full)
			if err != nil {
				return nil, err
			}
			paths = append(paths, nested...)
			continue
		}
		paths = append(paths, full)
	}
	return paths, nil
}
