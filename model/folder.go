package model

import "time"

type Folder struct {
	ID uint64 `gorm:"primaryKey" json:"id,omitempty"`

	Name string `gorm:"column:name;size:140;not null;uniqueIndex:uk_folder_parent_name,priority:2" json:"name"`

	ParentID *uint64 `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Parent   *Folder `gorm:"foreignKey:ParentID;references:ID" json:"-"`

	// ParentKey folds the NULL root parent into 0 so the unique index also
	// covers root-level siblings. Maintained by MySQL, never written.
	ParentKey uint64 `gorm:"->;column:parent_key;type:bigint unsigned GENERATED ALWAYS AS (coalesce(parent_id, 0)) STORED;uniqueIndex:uk_folder_parent_name,priority:1" json:"-"`

	AuthorID uint64 `gorm:"column:author_id;not null;index" json:"author_id,omitempty"`
	Author   User   `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `gorm:"column:modified_at" json:"modified_at"`
	ModifiedByID uint64    `gorm:"column:modified_by_id;not null" json:"modified_by_id,omitempty"`

	// SharedWithMe marks rows surfaced by the shared branch of the access
	// filter. Display only, never persisted.
	SharedWithMe bool `gorm:"-" json:"shared,omitempty"`
}

// TableName returns the database table name.
func (Folder) TableName() string {
	return "folder"
}

func (f *Folder) MemberID() uint64   { return f.ID }
func (f *Folder) MemberName() string { return f.Name }
func (f *Folder) MemberKind() string { return KindFolder }
func (f *Folder) OwnerID() uint64    { return f.AuthorID }

/*
parent_id 为指针 根目录文件夹没有父级 对应 NULL
MySQL 的唯一索引对 NULL 不生效 所以唯一索引建在生成列 parent_key 上
预检查只负责给出友好的错误信息
*/
