package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Media is a binary product asset. The storage key embeds the owning
// product ID so identical filenames on different products never collide.
type Media struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	FileName  string
	MimeType  string
	URL       string
	CreatedAt time.Time
}

// NewMedia creates a media record for the given product and source URL.
func NewMedia(productID uuid.UUID, fileName, mimeType, url string) (*Media, error) {
	if productID == uuid.Nil {
		return nil, ErrMediaProductRequired
	}
	if fileName == "" {
		return nil, ErrMediaFileNameRequired
	}
	return &Media{
		ID:        uuid.New(),
		ProductID: productID,
		FileName:  fileName,
		MimeType:  mimeType,
		URL:       url,
		CreatedAt: time.Now(),
	}, nil
}

// StorageKey returns the object-storage key for this asset.
func (m *Media) StorageKey() string {
	return fmt.Sprintf("%s_%s", m.ProductID, m.FileName)
}

// UniquifiedKey returns a storage key made unique with the media ID. Used
// for the single retry after a storage collision.
func (m *Media) UniquifiedKey() string {
	return fmt.Sprintf("%s_%s_%s", m.ProductID, m.ID, m.FileName)
}
