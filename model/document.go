package model

import "time"

type Document struct {
	ID uint64 `gorm:"primaryKey" json:"id,omitempty"`

	Name string `gorm:"column:name;size:255;not null;uniqueIndex:uk_document_folder_name,priority:2" json:"name"`

	// OriginalFilename is the name the file was uploaded under. The display
	// name can diverge; the storage path never uses either.
	OriginalFilename string `gorm:"column:original_filename;size:500;not null" json:"original_filename"`

	FolderID *uint64 `gorm:"column:folder_id;index" json:"folder_id,omitempty"`
	Folder   *Folder `gorm:"foreignKey:FolderID;references:ID" json:"-"`

	// FolderKey folds the NULL root folder into 0 so the unique index also
	// covers root-level siblings. Maintained by MySQL, never written.
	FolderKey uint64 `gorm:"->;column:folder_key;type:bigint unsigned GENERATED ALWAYS AS (coalesce(folder_id, 0)) STORED;uniqueIndex:uk_document_folder_name,priority:1" json:"-"`

	AuthorID uint64 `gorm:"column:author_id;not null;index" json:"author_id,omitempty"`
	Author   User   `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	BucketName string `gorm:"column:bucket_name;size:64;not null" json:"-"`
	ObjectName string `gorm:"column:object_name;size:512;not null" json:"-"`

	Size int64 `gorm:"column:size;not null" json:"size"`

	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `gorm:"column:modified_at" json:"modified_at"`
	ModifiedByID uint64    `gorm:"column:modified_by_id;not null" json:"modified_by_id,omitempty"`

	// SharedWithMe marks rows surfaced by the shared branch of the access
	// filter. Display only, never persisted.
	SharedWithMe bool `gorm:"-" json:"shared,omitempty"`
}

// TableName returns the database table name.
func (Document) TableName() string {
	return "document"
}

func (d *Document) MemberID() uint64   { return d.ID }
func (d *Document) MemberName() string { return d.Name }
func (d *Document) MemberKind() string { return KindDocument }
func (d *Document) OwnerID() uint64    { return d.AuthorID }
