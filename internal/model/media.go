package model

import "time"

// ResourceType is the kind of asset a Media record holds.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourcePDF   ResourceType = "pdf"
	ResourceVideo ResourceType = "video"
)

// StorageType is the delivery hint the object was stored with. Images are
// served inline; everything else is a raw binary.
type StorageType string

const (
	StorageImage StorageType = "image"
	StorageRaw   StorageType = "raw"
)

// StorageTypeFor maps a resource type to the hint used when storing it.
func StorageTypeFor(rt ResourceType) StorageType {
	if rt == ResourceImage {
		return StorageImage
	}
	return StorageRaw
}

// Media is one uploaded asset. It is the single source of truth for remote
// objects; content documents only hold its ID.
type Media struct {
	ID           string       `json:"id"`
	URL          string       `json:"url"`
	PublicID     string       `json:"publicId"`
	ResourceType ResourceType `json:"resourceType"`
	StorageType  StorageType  `json:"storageType"`
	OriginalName string       `json:"originalName"`
	Size         int64        `json:"size"`
	MimeType     string       `json:"mimeType"`
	UploadedBy   string       `json:"uploadedBy,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Asset is the descriptor embedded in content documents.
type Asset struct {
	ID           string       `json:"id"`
	URL          string       `json:"url"`
	PublicID     string       `json:"publicId"`
	ResourceType ResourceType `json:"resourceType"`
}

// AssetOf builds the embedded descriptor for m, or nil when m is nil.
func AssetOf(m *Media) *Asset {
	if m == nil {
		return nil
	}
	return &Asset{ID: m.ID, URL: m.URL, PublicID: m.PublicID, ResourceType: m.ResourceType}
}

// Orphan is a remote object whose owning record is gone but whose remote
// delete failed. The sweeper retries it.
type Orphan struct {
	ID          string      `json:"id"`
	PublicID    string      `json:"publicId"`
	StorageType StorageType `json:"storageType"`
	Reason      string      `json:"reason"`
	Attempts    int         `json:"attempts"`
	LastError   string      `json:"lastError"`
	CreatedAt   time.Time   `json:"createdAt"`
}
