package model

import "time"

// FolderSharedUser caches "folder is visible to user". Presence of any row
// for a folder is what makes that folder shared; nothing is derived from
// ancestors at read time.
type FolderSharedUser struct {
	ID uint64 `gorm:"primaryKey" json:"id,omitempty"`

	FolderID uint64 `gorm:"column:folder_id;not null;uniqueIndex:uk_folder_shared_user,priority:1" json:"folder_id"`
	Folder   Folder `gorm:"foreignKey:FolderID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	UserID uint64 `gorm:"column:user_id;not null;index;uniqueIndex:uk_folder_shared_user,priority:2" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (FolderSharedUser) TableName() string {
	return "folder_shared_user"
}

type DocumentSharedUser struct {
	ID uint64 `gorm:"primaryKey" json:"id,omitempty"`

	DocumentID uint64   `gorm:"column:document_id;not null;uniqueIndex:uk_document_shared_user,priority:1" json:"document_id"`
	Document   Document `gorm:"foreignKey:DocumentID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	UserID uint64 `gorm:"column:user_id;not null;index;uniqueIndex:uk_document_shared_user,priority:2" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (DocumentSharedUser) TableName() string {
	return "document_shared_user"
}
