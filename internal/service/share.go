package service

import (
	"DocVault/internal/repo"
	"DocVault/model"
	"DocVault/utils"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// folderShared checks the denormalized shared state of a folder: any
// FolderSharedUser row means shared. No ancestor state is consulted.
func folderShared(folderID uint64) (bool, error) {
	var count int64
	err := repo.Db.Model(&model.FolderSharedUser{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error
	return count > 0, err
}

// IsFolderSharedWith is the optimized single-user existence check.
func IsFolderSharedWith(folderID, userID uint64) (bool, error) {
	var count int64
	err := repo.Db.Model(&model.FolderSharedUser{}).
		Where("folder_id = ? AND user_id = ?", folderID, userID).
		Count(&count).Error
	return count > 0, err
}

// IsDocumentSharedWith is the optimized single-user existence check.
func IsDocumentSharedWith(documentID, userID uint64) (bool, error) {
	var count int64
	err := repo.Db.Model(&model.DocumentSharedUser{}).
		Where("document_id = ? AND user_id = ?", documentID, userID).
		Count(&count).Error
	return count > 0, err
}

// FolderSharedWith returns every user the folder is shared with.
func FolderSharedWith(folderID uint64) ([]model.User, error) {
	var users []model.User
	err := repo.Db.Model(&model.User{}).
		Where("id IN (?)", repo.Db.Model(&model.FolderSharedUser{}).
			Select("user_id").
			Where("folder_id = ?", folderID)).
		Find(&users).Error
	return users, err
}

// DocumentSharedWith returns every user the document is shared with.
func DocumentSharedWith(documentID uint64) ([]model.User, error) {
	var users []model.User
	err := repo.Db.Model(&model.User{}).
		Where("id IN (?)", repo.Db.Model(&model.DocumentSharedUser{}).
			Select("user_id").
			Where("document_id = ?", documentID)).
		Find(&users).Error
	return users, err
}

// CanShareFolder reports whether user may share folder. Policy lives in the
// hookset: only root folders, only by their author.
func CanShareFolder(user *model.User, folder *model.Folder) bool {
	return hooks.CanShareFolder(user, folder)
}

// SharedParent resolves the root of the shared hierarchy containing folder.
// The walk starts at the immediate parent and ascends only while each
// ancestor's denormalized shared flag holds, so a broken chain stops at the
// break instead of reattaching to a disconnected shared ancestor. When no
// ancestor is shared the folder is its own shared parent.
func SharedParent(folder *model.Folder) (*model.Folder, error) {
	crumbs, err := Breadcrumbs(folder.ParentID)
	if err != nil {
		return nil, err
	}
	result := folder
	for i := len(crumbs) - 1; i >= 0; i-- {
		shared, err := folderShared(crumbs[i].ID)
		if err != nil {
			return nil, err
		}
		if !shared {
			break
		}
		result = &crumbs[i]
	}
	return result, nil
}

// ShareFolder shares a folder and every descendant with the given users.
// Bulk and idempotent: users already shared on the folder are skipped, and
// no record is written where the target user authored the member (an
// author never needs a shared record for their own content). The unique
// pair index plus OnConflict backstops concurrent re-shares.
func ShareFolder(folder *model.Folder, users []model.User) error {
	targets := make([]model.User, 0, len(users))
	for _, user := range users {
		already, err := IsFolderSharedWith(folder.ID, user.ID)
		if err != nil {
			return err
		}
		if !already {
			targets = append(targets, user)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	folderID := folder.ID
	descendants, err := Members(&folderID, false, nil)
	if err != nil {
		return err
	}
	members := append([]model.Member{folder}, descendants...)

	var folderRows []model.FolderSharedUser
	var documentRows []model.DocumentSharedUser
	for _, member := range members {
		for _, user := range targets {
			if user.ID == member.OwnerID() {
				continue
			}
			switch member.MemberKind() {
			case model.KindFolder:
				folderRows = append(folderRows, model.FolderSharedUser{
					FolderID: member.MemberID(),
					UserID:   user.ID,
				})
			case model.KindDocument:
				documentRows = append(documentRows, model.DocumentSharedUser{
					DocumentID: member.MemberID(),
					UserID:     user.ID,
				})
			}
		}
	}

	err = repo.Db.Transaction(func(tx *gorm.DB) error {
		if len(folderRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				CreateInBatches(folderRows, 200).Error; err != nil {
				return err
			}
		}
		if len(documentRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				CreateInBatches(documentRows, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, user := range targets {
		_ = utils.InvalidateUserMemberListCache(context.Background(), user.ID)
	}
	return nil
}

// inheritShares grants a freshly created folder the users of the shared
// hierarchy it was created inside. A no-op when the parent chain is not
// shared.
func inheritShares(folder *model.Folder, parent *model.Folder) error {
	sharedRoot, err := SharedParent(parent)
	if err != nil {
		return err
	}
	users, err := FolderSharedWith(sharedRoot.ID)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	return ShareFolder(folder, users)
}

// shareDocument writes shared records for one document, skipping its
// author and anyone already shared. Used for share inheritance on upload.
func shareDocument(document *model.Document, users []model.User) error {
	var rows []model.DocumentSharedUser
	for _, user := range users {
		if user.ID == document.AuthorID {
			continue
		}
		already, err := IsDocumentSharedWith(document.ID, user.ID)
		if err != nil {
			return err
		}
		if already {
			continue
		}
		rows = append(rows, model.DocumentSharedUser{
			DocumentID: document.ID,
			UserID:     user.ID,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := repo.Db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		_ = utils.InvalidateUserMemberListCache(context.Background(), row.UserID)
	}
	return nil
}
