package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
	Email         string `json:"email" binding:"required"`
}

type CreateFolderRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *uint64 `json:"parent_id"`
}

type MemberListRequest struct {
	ParentID *uint64 `json:"parent_id"`
	Direct   bool    `json:"direct"`
}

type ShareFolderRequest struct {
	FolderID uint64   `json:"folder_id" binding:"required"`
	UserIDs  []uint64 `json:"user_ids" binding:"required"`
}

type DeleteFolderRequest struct {
	FolderID uint64 `json:"folder_id" binding:"required"`
}

type DeleteDocumentRequest struct {
	DocumentID uint64 `json:"document_id" binding:"required"`
}
