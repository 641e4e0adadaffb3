package service

import (
	"DocVault/internal/repo"
	"DocVault/model"

	"gorm.io/gorm"
)

// FoldersForUser narrows a folder query to rows the user may act on:
// authored by the user, or shared with them. Chained as an extra Where so
// composition with prior conditions stays conjunctive.
func FoldersForUser(query *gorm.DB, userID uint64) *gorm.DB {
	shared := repo.Db.Model(&model.FolderSharedUser{}).
		Select("folder_id").
		Where("user_id = ?", userID)
	return query.Where("author_id = ? OR id IN (?)", userID, shared)
}

// DocumentsForUser narrows a document query the same way.
func DocumentsForUser(query *gorm.DB, userID uint64) *gorm.DB {
	shared := repo.Db.Model(&model.DocumentSharedUser{}).
		Select("document_id").
		Where("user_id = ?", userID)
	return query.Where("author_id = ? OR id IN (?)", userID, shared)
}

// markSharedFolders flags fetched folders that the user sees through the
// shared branch rather than as author. In-memory only.
func markSharedFolders(folders []model.Folder, userID uint64) error {
	ids := make([]uint64, 0, len(folders))
	for i := range folders {
		if folders[i].AuthorID != userID {
			ids = append(ids, folders[i].ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	var sharedIDs []uint64
	if err := repo.Db.Model(&model.FolderSharedUser{}).
		Where("folder_id IN ? AND user_id = ?", ids, userID).
		Pluck("folder_id", &sharedIDs).Error; err != nil {
		return err
	}
	sharedSet := make(map[uint64]struct{}, len(sharedIDs))
	for _, id := range sharedIDs {
		sharedSet[id] = struct{}{}
	}
	for i := range folders {
		if _, ok := sharedSet[folders[i].ID]; ok {
			folders[i].SharedWithMe = true
		}
	}
	return nil
}

// markSharedDocuments flags fetched documents surfaced via sharing.
func markSharedDocuments(documents []model.Document, userID uint64) error {
	ids := make([]uint64, 0, len(documents))
	for i := range documents {
		if documents[i].AuthorID != userID {
			ids = append(ids, documents[i].ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	var sharedIDs []uint64
	if err := repo.Db.Model(&model.DocumentSharedUser{}).
		Where("document_id IN ? AND user_id = ?", ids, userID).
		Pluck("document_id", &sharedIDs).Error; err != nil {
		return err
	}
	sharedSet := make(map[uint64]struct{}, len(sharedIDs))
	for _, id := range sharedIDs {
		sharedSet[id] = struct{}{}
	}
	for i := range documents {
		if _, ok := sharedSet[documents[i].ID]; ok {
			documents[i].SharedWithMe = true
		}
	}
	return nil
}
