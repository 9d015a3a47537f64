// file: service/drive_service.go

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"office-graph-api/logger"
)

// DriveService uploads files to the signed-in user's OneDrive root.
type DriveService struct {
	graph *GraphClient
}

func NewDriveService(graph *GraphClient) *DriveService {
	return &DriveService{graph: graph}
}

// Upload stores content as fileName and returns the item's web URL.
// Graph answers 201 for a new item and 200 when it replaced one.
func (s *DriveService) Upload(ctx context.Context, email, fileName string, content io.Reader) (string, error) {
	path := "/me/drive/root:/" + url.PathEscape(fileName) + ":/content"
	resp, err := s.graph.Do(ctx, email, http.MethodPut, path, content, "application/octet-stream")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		perr := newProviderError(resp)
		logger.Log.WithField("file_name", fileName).WithField("status_code", perr.Status).Warn("Drive upload rejected")
		return "", perr
	}

	var item struct {
		WebURL string `json:"webUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return "", fmt.Errorf("failed to decode drive item: %w", err)
	}

	logger.Log.WithField("file_name", fileName).Info("File uploaded to OneDrive")
	return item.WebURL, nil
}
