package drive

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client uploads attachments into a fixed Drive folder and hands back a
// view URL for the stored file.
type Client struct {
	service  *drive.Service
	folderID string
}

func NewClient(ctx context.Context, credentialsFile, folderID string) (*Client, error) {
	service, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{
		service:  service,
		folderID: folderID,
	}, nil
}

// Upload stores content under the configured folder and returns the file's
// view URL.
func (c *Client) Upload(ctx context.Context, name string, content io.Reader, mimeType string) (string, error) {
	meta := &drive.File{
		Name:    name,
		Parents: []string{c.folderID},
	}

	created, err := c.service.Files.Create(meta).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", name, err)
	}

	return FileURL(created.Id), nil
}

// FileURL builds the shareable view URL for a Drive file ID.
func FileURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", fileID)
}
