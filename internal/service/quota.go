package service

import (
	"DocVault/config"
	"DocVault/internal/repo"
	"DocVault/model"
	"DocVault/utils"
	"context"
	"log"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const storageCacheTTL = 5 * time.Minute

// EnsureUserStorage provisions the quota record for a user. Called
// explicitly from user creation; idempotent.
func EnsureUserStorage(tx *gorm.DB, userID uint64) error {
	storage := &model.UserStorage{
		UserID:     userID,
		BytesUsed:  0,
		BytesTotal: config.AppConfig.DefaultQuotaBytes,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(storage).Error
}

// GetUserStorage returns the quota record for a user.
func GetUserStorage(userID uint64) (*model.UserStorage, error) {
	if cached, ok := utils.GetUserStorageFromCache(context.Background(), userID); ok {
		return cached, nil
	}
	var storage model.UserStorage
	if err := repo.Db.Where("user_id = ?", userID).First(&storage).Error; err != nil {
		return nil, err
	}
	_ = utils.SetUserStorageToCache(context.Background(), userID, &storage, storageCacheTTL)
	return &storage, nil
}

// ReserveStorage checks and claims quota for an upload inside the caller's
// transaction. The row lock serializes concurrent uploads by the same user
// and the increment is relative, not read-modify-write. Cache invalidation
// is the caller's job after commit; doing it here would let a concurrent
// read repopulate the cache with the pre-commit value.
func ReserveStorage(tx *gorm.DB, userID uint64, size int64) error {
	var storage model.UserStorage
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&storage).Error; err != nil {
		return err
	}
	if storage.BytesUsed+size > storage.BytesTotal {
		return ErrQuotaExceeded
	}
	return tx.Model(&model.UserStorage{}).
		Where("user_id = ?", userID).
		UpdateColumn("bytes_used", gorm.Expr("bytes_used + ?", size)).Error
}

// ReleaseStorage gives quota back after a document is removed. The ledger
// is not clamped at zero: going negative means accounting went wrong
// somewhere else, so it is reported instead of hidden. As with reserve,
// the caller invalidates the storage cache after commit.
func ReleaseStorage(tx *gorm.DB, userID uint64, size int64) error {
	if err := tx.Model(&model.UserStorage{}).
		Where("user_id = ?", userID).
		UpdateColumn("bytes_used", gorm.Expr("bytes_used - ?", size)).Error; err != nil {
		return err
	}
	var storage model.UserStorage
	if err := tx.Where("user_id = ?", userID).First(&storage).Error; err == nil && storage.BytesUsed < 0 {
		log.Printf("storage ledger for user %d went negative (%d bytes)", userID, storage.BytesUsed)
	}
	return nil
}

// StoragePercentage returns ceil(used/total*100).
func StoragePercentage(storage *model.UserStorage) int {
	if storage.BytesTotal == 0 {
		return 0
	}
	return int(math.Ceil(float64(storage.BytesUsed) / float64(storage.BytesTotal) * 100))
}

// StorageColor maps a quota record onto its display band.
func StorageColor(storage *model.UserStorage) (string, error) {
	return hooks.StorageColor(StoragePercentage(storage))
}
