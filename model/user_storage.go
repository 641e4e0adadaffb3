package model

type UserStorage struct {
	ID uint64 `gorm:"primaryKey" json:"id,omitempty"`

	UserID uint64 `gorm:"column:user_id;not null;uniqueIndex" json:"user_id,omitempty"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	BytesUsed  int64 `gorm:"column:bytes_used;not null;default:0" json:"bytes_used"`
	BytesTotal int64 `gorm:"column:bytes_total;not null;default:0" json:"bytes_total"`
}

// TableName returns the database table name.
func (UserStorage) TableName() string {
	return "user_storage"
}
