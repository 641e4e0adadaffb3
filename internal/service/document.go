package service

import (
	"DocVault/config"
	"DocVault/internal/repo"
	"DocVault/internal/storage"
	"DocVault/model"
	"DocVault/utils"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// CreateDocument stores the payload and records the document. The blob is
// written before the database transaction so a committed row never points
// at a missing object; if the transaction fails the orphaned blob is
// removed best effort. Quota is reserved inside the same transaction as
// the insert. Documents uploaded into a shared hierarchy are shared with
// that hierarchy's users.
func CreateDocument(
	ctx context.Context,
	user *model.User,
	folderID *uint64,
	name string,
	originalFilename string,
	contentType string,
	reader io.Reader,
	size int64,
) (*model.Document, error) {
	var parent *model.Folder
	if folderID != nil {
		var folder model.Folder
		if err := FoldersForUser(repo.Db.Where("id = ?", *folderID), user.ID).
			First(&folder).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		parent = &folder
	}

	if storage.Default == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	bucket := config.AppConfig.BucketName
	objectName := hooks.FileUploadPath(originalFilename)
	if err := storage.Default.PutObject(ctx, bucket, objectName, reader, size, storage.PutOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}

	var document *model.Document
	err := repo.Db.Transaction(func(tx *gorm.DB) error {
		exists, err := documentExists(tx, name, folderID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateName
		}
		if err := ReserveStorage(tx, user.ID, size); err != nil {
			return err
		}
		now := time.Now()
		document = &model.Document{
			Name:             name,
			OriginalFilename: originalFilename,
			FolderID:         folderID,
			AuthorID:         user.ID,
			BucketName:       bucket,
			ObjectName:       objectName,
			Size:             size,
			ModifiedAt:       now,
			ModifiedByID:     user.ID,
		}
		if err := tx.Create(document).Error; err != nil {
			return err
		}
		return touchAncestors(tx, folderID, user.ID, now)
	})
	if err != nil { // 记录失败 回收已写入的对象
		if removeErr := storage.Default.RemoveObject(ctx, bucket, objectName); removeErr != nil {
			log.Println("remove orphaned blob failed:", removeErr)
		}
		return nil, err
	}

	if parent != nil {
		sharedRoot, err := SharedParent(parent)
		if err != nil {
			return nil, err
		}
		users, err := FolderSharedWith(sharedRoot.ID)
		if err != nil {
			return nil, err
		}
		if len(users) > 0 {
			if err := shareDocument(document, users); err != nil {
				return nil, err
			}
		}
	}

	invalidateMemberCache(user.ID, folderID)
	_ = utils.InvalidateUserStorageCache(context.Background(), user.ID)
	return document, nil
}

// GetDocumentForUser loads one document the user may act on.
func GetDocumentForUser(documentID, userID uint64) (*model.Document, error) {
	var document model.Document
	err := DocumentsForUser(repo.Db.Where("id = ?", documentID), userID).
		First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if document.AuthorID != userID {
		document.SharedWithMe = true
	}
	return &document, nil
}

// TouchDocument updates modified metadata on the document and cascades to
// every folder up to the root.
func TouchDocument(document *model.Document, userID uint64) error {
	now := time.Now()
	return repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Document{}).
			Where("id = ?", document.ID).
			Updates(map[string]interface{}{
				"modified_at":    now,
				"modified_by_id": userID,
			}).Error; err != nil {
			return err
		}
		document.ModifiedAt = now
		document.ModifiedByID = userID
		return touchAncestors(tx, document.FolderID, userID, now)
	})
}

// DownloadDocument opens the document's blob for streaming.
func DownloadDocument(ctx context.Context, document *model.Document) (io.ReadCloser, storage.ObjectInfo, error) {
	if storage.Default == nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("storage not initialized")
	}
	reader, info, err := storage.Default.GetObject(ctx, document.BucketName, document.ObjectName)
	if err != nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return reader, info, nil
}

// DocumentDownloadURL returns a presigned URL for the document's blob.
func DocumentDownloadURL(ctx context.Context, document *model.Document, expiry time.Duration) (string, error) {
	if storage.Default == nil {
		return "", fmt.Errorf("storage not initialized")
	}
	url, err := storage.Default.PresignedGetObject(ctx, document.BucketName, document.ObjectName, expiry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return url, nil
}
