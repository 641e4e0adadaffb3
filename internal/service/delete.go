package service

import (
	"DocVault/config"
	"DocVault/internal/repo"
	"DocVault/internal/storage"
	"DocVault/model"
	"DocVault/utils"
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
)

// blobRef is a deferred blob removal collected during a delete transaction.
type blobRef struct {
	bucket string
	object string
}

// DeleteDocument removes a single document: record and quota inside one
// transaction, blob afterwards. Only the author may delete; anyone else
// gets not-found.
func DeleteDocument(ctx context.Context, userID, documentID uint64) error {
	var document model.Document
	if err := repo.Db.Where("id = ? AND author_id = ?", documentID, userID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Shared rows vanish inside the transaction, so resolve the affected
	// users up front.
	recipients, _ := DocumentSharedWith(document.ID)

	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		return deleteDocumentTx(tx, &document)
	})
	if err != nil {
		return err
	}

	removeBlob(ctx, blobRef{bucket: document.BucketName, object: document.ObjectName})
	invalidateMemberCache(userID, document.FolderID)
	for _, user := range recipients {
		_ = utils.InvalidateUserMemberListCache(context.Background(), user.ID)
	}
	_ = utils.InvalidateUserStorageCache(context.Background(), document.AuthorID)
	return nil
}

// DeleteFolder tears down a folder subtree: child folders first, then
// child documents, then the folder itself, all in one transaction so the
// tree and the quota ledger stay consistent. Blob removals run after
// commit; a failed removal is logged, not fatal, because the records and
// the ledger are authoritative and an orphaned blob is only a cleanup
// concern.
func DeleteFolder(ctx context.Context, userID, folderID uint64) error {
	var folder model.Folder
	if err := repo.Db.Where("id = ? AND author_id = ?", folderID, userID).
		First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Shared rows vanish inside the transaction, so resolve the affected
	// users up front.
	sharedUsers, _ := FolderSharedWith(folder.ID)

	var removed subtreeRemoval
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		collected, err := deleteFolderTx(tx, folder.ID)
		if err != nil {
			return err
		}
		removed = collected
		return nil
	})
	if err != nil {
		return err
	}

	for _, blob := range removed.blobs {
		removeBlob(ctx, blob)
	}
	// 子树任意层级都可能有缓存的列表
	_ = utils.InvalidateUserMemberListCache(context.Background(), userID)
	for _, user := range sharedUsers {
		_ = utils.InvalidateUserMemberListCache(context.Background(), user.ID)
	}
	for authorID := range removed.authors {
		_ = utils.InvalidateUserStorageCache(context.Background(), authorID)
	}
	return nil
}

// subtreeRemoval carries everything a committed folder deletion still owes
// the outside world: blobs to remove and authors whose cached ledgers are
// now stale.
type subtreeRemoval struct {
	blobs   []blobRef
	authors map[uint64]struct{}
}

func (r *subtreeRemoval) merge(other subtreeRemoval) {
	r.blobs = append(r.blobs, other.blobs...)
	for authorID := range other.authors {
		r.addAuthor(authorID)
	}
}

func (r *subtreeRemoval) addAuthor(authorID uint64) {
	if r.authors == nil {
		r.authors = make(map[uint64]struct{})
	}
	r.authors[authorID] = struct{}{}
}

// deleteFolderTx removes a folder and its descendants depth-first inside
// the caller's transaction.
func deleteFolderTx(tx *gorm.DB, folderID uint64) (subtreeRemoval, error) {
	var removed subtreeRemoval

	var childFolders []model.Folder
	if err := tx.Where("parent_id = ?", folderID).Find(&childFolders).Error; err != nil {
		return removed, err
	}
	for _, child := range childFolders {
		childRemoved, err := deleteFolderTx(tx, child.ID)
		if err != nil {
			return removed, err
		}
		removed.merge(childRemoved)
	}

	var documents []model.Document
	if err := tx.Where("folder_id = ?", folderID).Find(&documents).Error; err != nil {
		return removed, err
	}
	for i := range documents {
		if err := deleteDocumentTx(tx, &documents[i]); err != nil {
			return removed, err
		}
		removed.blobs = append(removed.blobs, blobRef{
			bucket: documents[i].BucketName,
			object: documents[i].ObjectName,
		})
		removed.addAuthor(documents[i].AuthorID)
	}

	if err := tx.Where("folder_id = ?", folderID).
		Delete(&model.FolderSharedUser{}).Error; err != nil {
		return removed, err
	}
	if err := tx.Delete(&model.Folder{}, folderID).Error; err != nil {
		return removed, err
	}
	return removed, nil
}

// deleteDocumentTx removes one document record, its shared records, and
// releases the author's quota, inside the caller's transaction.
func deleteDocumentTx(tx *gorm.DB, document *model.Document) error {
	if err := tx.Where("document_id = ?", document.ID).
		Delete(&model.DocumentSharedUser{}).Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.Document{}, document.ID).Error; err != nil {
		return err
	}
	return ReleaseStorage(tx, document.AuthorID, document.Size)
}

func removeBlob(ctx context.Context, blob blobRef) {
	if storage.Default == nil {
		log.Println("remove blob skipped, storage not initialized:", blob.object)
		return
	}
	bucket := blob.bucket
	if bucket == "" {
		bucket = config.AppConfig.BucketName
	}
	if err := storage.Default.RemoveObject(ctx, bucket, blob.object); err != nil {
		log.Println("remove blob failed:", blob.object, err)
	}
}
