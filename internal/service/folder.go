package service

import (
	"DocVault/internal/repo"
	"DocVault/model"
	"DocVault/utils"
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
)

const memberListCacheTTL = 2 * time.Minute

// cacheParentID normalizes a nullable parent for cache keys.
func cacheParentID(parentID *uint64) uint64 {
	if parentID == nil {
		return 0
	}
	return *parentID
}

// invalidateMemberCache clears one folder level for one user.
func invalidateMemberCache(userID uint64, parentID *uint64) {
	_ = utils.InvalidateMemberListCache(context.Background(), userID, cacheParentID(parentID))
}

// folderExists reports whether a sibling folder with the name exists.
func folderExists(tx *gorm.DB, name string, parentID *uint64) (bool, error) {
	var count int64
	query := tx.Model(&model.Folder{}).Where("name = ?", name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// documentExists reports whether a sibling document with the name exists.
func documentExists(tx *gorm.DB, name string, folderID *uint64) (bool, error) {
	var count int64
	query := tx.Model(&model.Document{}).Where("name = ?", name)
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateFolder creates a folder for user, optionally under a parent the
// user can see. The duplicate pre-check runs inside the same transaction as
// the insert; the unique index backstops races the check cannot catch.
// Folders created inside a shared hierarchy inherit that hierarchy's users.
func CreateFolder(user *model.User, parentID *uint64, name string) (*model.Folder, error) {
	var folder *model.Folder
	var inheritFrom *model.Folder
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		if parentID != nil {
			var parent model.Folder
			if err := FoldersForUser(tx.Where("id = ?", *parentID), user.ID).
				First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			inheritFrom = &parent
		}
		exists, err := folderExists(tx, name, parentID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateName
		}
		now := time.Now()
		folder = &model.Folder{
			Name:         name,
			ParentID:     parentID,
			AuthorID:     user.ID,
			ModifiedAt:   now,
			ModifiedByID: user.ID,
		}
		if err := tx.Create(folder).Error; err != nil {
			return err
		}
		return touchAncestors(tx, parentID, user.ID, now)
	})
	if err != nil {
		return nil, err
	}

	// 新文件夹继承所在共享层级的可见用户
	if inheritFrom != nil {
		if err := inheritShares(folder, inheritFrom); err != nil {
			return nil, err
		}
	}
	invalidateMemberCache(user.ID, parentID)
	return folder, nil
}

// GetFolderForUser loads one folder the user may act on.
func GetFolderForUser(folderID, userID uint64) (*model.Folder, error) {
	var folder model.Folder
	err := FoldersForUser(repo.Db.Where("id = ?", folderID), userID).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if folder.AuthorID != userID {
		folder.SharedWithMe = true
	}
	return &folder, nil
}

// touchAncestors re-stamps every folder from parentID up to the root.
// Walks by repeated lookup, bounded by tree depth.
func touchAncestors(tx *gorm.DB, parentID *uint64, userID uint64, now time.Time) error {
	current := parentID
	for current != nil {
		var folder model.Folder
		if err := tx.Where("id = ?", *current).First(&folder).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Folder{}).
			Where("id = ?", folder.ID).
			Updates(map[string]interface{}{
				"modified_at":    now,
				"modified_by_id": userID,
			}).Error; err != nil {
			return err
		}
		current = folder.ParentID
	}
	return nil
}

// TouchFolder updates modified metadata on the folder and every ancestor.
func TouchFolder(folder *model.Folder, userID uint64) error {
	now := time.Now()
	return repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Folder{}).
			Where("id = ?", folder.ID).
			Updates(map[string]interface{}{
				"modified_at":    now,
				"modified_by_id": userID,
			}).Error; err != nil {
			return err
		}
		folder.ModifiedAt = now
		folder.ModifiedByID = userID
		return touchAncestors(tx, folder.ParentID, userID, now)
	})
}

// Breadcrumbs returns the ancestor chain of a node, root first, excluding
// the node itself. Empty for root-level nodes.
func Breadcrumbs(parentID *uint64) ([]model.Folder, error) {
	var crumbs []model.Folder
	current := parentID
	for current != nil {
		var folder model.Folder
		if err := repo.Db.Where("id = ?", *current).First(&folder).Error; err != nil {
			return nil, err
		}
		crumbs = append([]model.Folder{folder}, crumbs...)
		current = folder.ParentID
	}
	return crumbs, nil
}

// listLevel loads one folder level, optionally restricted to a user.
func listLevel(parentID *uint64, userID *uint64) ([]model.Folder, []model.Document, error) {
	folderQuery := repo.Db.Model(&model.Folder{})
	documentQuery := repo.Db.Model(&model.Document{})
	if parentID == nil {
		folderQuery = folderQuery.Where("parent_id IS NULL")
		documentQuery = documentQuery.Where("folder_id IS NULL")
	} else {
		folderQuery = folderQuery.Where("parent_id = ?", *parentID)
		documentQuery = documentQuery.Where("folder_id = ?", *parentID)
	}
	if userID != nil {
		folderQuery = FoldersForUser(folderQuery, *userID)
		documentQuery = DocumentsForUser(documentQuery, *userID)
	}

	var folders []model.Folder
	if err := folderQuery.Find(&folders).Error; err != nil {
		return nil, nil, err
	}
	var documents []model.Document
	if err := documentQuery.Find(&documents).Error; err != nil {
		return nil, nil, err
	}
	return folders, documents, nil
}

// interleave merges one level into a single name-ascending sequence,
// folders and documents mixed rather than grouped by kind.
func interleave(folders []model.Folder, documents []model.Document) []model.Member {
	members := make([]model.Member, 0, len(folders)+len(documents))
	for i := range folders {
		members = append(members, &folders[i])
	}
	for i := range documents {
		members = append(members, &documents[i])
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].MemberName() < members[j].MemberName()
	})
	return members
}

// Members returns the children of a folder (nil parentID means the tree
// root). direct=false extends each sorted level with the members of its
// subfolders; userID, when given, restricts results to nodes that user can
// act on and marks the ones surfaced by sharing.
func Members(parentID *uint64, direct bool, userID *uint64) ([]model.Member, error) {
	var (
		folders   []model.Folder
		documents []model.Document
		err       error
	)
	cacheable := userID != nil && direct
	if cacheable {
		if cached, ok := utils.GetMemberListFromCache(context.Background(), *userID, cacheParentID(parentID)); ok {
			folders, documents = cached.Folders, cached.Documents
			return interleave(folders, documents), nil
		}
	}

	folders, documents, err = listLevel(parentID, userID)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		if err := markSharedFolders(folders, *userID); err != nil {
			return nil, err
		}
		if err := markSharedDocuments(documents, *userID); err != nil {
			return nil, err
		}
	}
	members := interleave(folders, documents)

	if cacheable {
		_ = utils.SetMemberListToCache(
			context.Background(),
			*userID,
			cacheParentID(parentID),
			&utils.MemberListCache{Folders: folders, Documents: documents},
			memberListCacheTTL,
		)
	}
	if direct {
		return members, nil
	}
	// 按排序后的顺序展开子文件夹
	level := members
	for _, member := range level {
		if member.MemberKind() != model.KindFolder {
			continue
		}
		childID := member.MemberID()
		children, err := Members(&childID, false, userID)
		if err != nil {
			return nil, err
		}
		members = append(members, children...)
	}
	return members, nil
}

// FolderSize sums the sizes of all descendant documents at any depth.
// Computed, never stored.
func FolderSize(folderID uint64) (int64, error) {
	var total int64
	if err := repo.Db.Model(&model.Document{}).
		Where("folder_id = ?", folderID).
		Select("COALESCE(SUM(size), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	var childIDs []uint64
	if err := repo.Db.Model(&model.Folder{}).
		Where("parent_id = ?", folderID).
		Pluck("id", &childIDs).Error; err != nil {
		return 0, err
	}
	for _, childID := range childIDs {
		sub, err := FolderSize(childID)
		if err != nil {
			return 0, err
		}
		total += sub
	}
	return total, nil
}
