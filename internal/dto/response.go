package dto

import "time"

// MemberItem is one entry of a folder listing, folder or document.
type MemberItem struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Shared bool   `json:"shared,omitempty"`
}

// BreadcrumbItem locates one ancestor on the path to the root.
type BreadcrumbItem struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// FolderDetailResponse is the response for a folder detail view.
type FolderDetailResponse struct {
	ID          uint64           `json:"id"`
	Name        string           `json:"name"`
	ParentID    *uint64          `json:"parent_id,omitempty"`
	AuthorID    uint64           `json:"author_id"`
	ModifiedAt  time.Time        `json:"modified_at"`
	Shared      bool             `json:"shared,omitempty"`
	CanShare    bool             `json:"can_share"`
	Size        int64            `json:"size"`
	Breadcrumbs []BreadcrumbItem `json:"breadcrumbs"`
	Members     []MemberItem     `json:"members"`
	SharedWith  []SharedUserItem `json:"shared_with,omitempty"`
}

type SharedUserItem struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// DocumentDetailResponse is the response for a document detail view.
type DocumentDetailResponse struct {
	ID               uint64           `json:"id"`
	Name             string           `json:"name"`
	OriginalFilename string           `json:"original_filename"`
	FolderID         *uint64          `json:"folder_id,omitempty"`
	AuthorID         uint64           `json:"author_id"`
	Size             int64            `json:"size"`
	ModifiedAt       time.Time        `json:"modified_at"`
	Shared           bool             `json:"shared,omitempty"`
	Breadcrumbs      []BreadcrumbItem `json:"breadcrumbs"`
	DownloadURL      string           `json:"download_url,omitempty"`
}

// StorageStatusResponse reports the user's quota ledger.
type StorageStatusResponse struct {
	BytesUsed  int64  `json:"bytes_used"`
	BytesTotal int64  `json:"bytes_total"`
	Used       string `json:"used"`
	Total      string `json:"total"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}
