package service_test

import (
	"DocVault/internal/repo"
	"DocVault/internal/service"
	"DocVault/model"
	"errors"
	"testing"
)

func setLedger(t *testing.T, userID uint64, used, total int64) {
	t.Helper()
	if err := repo.Db.Model(&model.UserStorage{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"bytes_used": used, "bytes_total": total}).Error; err != nil {
		t.Fatal(err)
	}
}

func ledger(t *testing.T, userID uint64) *model.UserStorage {
	t.Helper()
	var storage model.UserStorage
	if err := repo.Db.Where("user_id = ?", userID).First(&storage).Error; err != nil {
		t.Fatal(err)
	}
	return &storage
}

// 超出配额的预留必须失败且不改动账本
func TestReserveStorageExceeded(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	setLedger(t, user.ID, 900, 1000)

	err := service.ReserveStorage(repo.Db, user.ID, 150)
	if !errors.Is(err, service.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if got := ledger(t, user.ID).BytesUsed; got != 900 {
		t.Fatalf("bytes_used = %d, want 900 (unchanged)", got)
	}
}

// 刚好占满配额是允许的
func TestReserveStorageExactFit(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	setLedger(t, user.ID, 900, 1000)

	if err := service.ReserveStorage(repo.Db, user.ID, 100); err != nil {
		t.Fatal(err)
	}
	if got := ledger(t, user.ID).BytesUsed; got != 1000 {
		t.Fatalf("bytes_used = %d, want 1000", got)
	}
}

// 释放不做下限截断
func TestReleaseStorageNotClamped(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	setLedger(t, user.ID, 50, 1000)

	if err := service.ReleaseStorage(repo.Db, user.ID, 80); err != nil {
		t.Fatal(err)
	}
	if got := ledger(t, user.ID).BytesUsed; got != -30 {
		t.Fatalf("bytes_used = %d, want -30", got)
	}
}

// 百分比向上取整
func TestStoragePercentage(t *testing.T) {
	cases := []struct {
		used, total int64
		want        int
	}{
		{0, 1000, 0},
		{1, 1000, 1},
		{599, 1000, 60},
		{600, 1000, 60},
		{1000, 1000, 100},
		{0, 0, 0},
	}
	for _, tc := range cases {
		storage := &model.UserStorage{BytesUsed: tc.used, BytesTotal: tc.total}
		if got := service.StoragePercentage(storage); got != tc.want {
			t.Errorf("percentage(%d/%d) = %d, want %d", tc.used, tc.total, got, tc.want)
		}
	}
}

// 颜色区间与越界错误
func TestStorageColor(t *testing.T) {
	cases := []struct {
		used, total int64
		want        string
	}{
		{0, 1000, "ok"},
		{590, 1000, "ok"},
		{600, 1000, "warning"},
		{890, 1000, "warning"},
		{900, 1000, "critical"},
		{1000, 1000, "critical"},
	}
	for _, tc := range cases {
		storage := &model.UserStorage{BytesUsed: tc.used, BytesTotal: tc.total}
		got, err := service.StorageColor(storage)
		if err != nil {
			t.Fatalf("color(%d/%d): %v", tc.used, tc.total, err)
		}
		if got != tc.want {
			t.Errorf("color(%d/%d) = %s, want %s", tc.used, tc.total, got, tc.want)
		}
	}

	over := &model.UserStorage{BytesUsed: 1100, BytesTotal: 1000}
	if _, err := service.StorageColor(over); !errors.Is(err, service.ErrRange) {
		t.Fatalf("expected ErrRange above 100%%, got %v", err)
	}
}

// 用户创建时自动建立账本 重复创建无副作用
func TestEnsureUserStorage(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	storage, err := service.GetUserStorage(user.ID)
	if err != nil {
		t.Fatalf("ledger missing after user creation: %v", err)
	}
	if storage.BytesUsed != 0 {
		t.Fatalf("new ledger bytes_used = %d, want 0", storage.BytesUsed)
	}
	if storage.BytesTotal <= 0 {
		t.Fatalf("new ledger bytes_total = %d, want > 0", storage.BytesTotal)
	}

	if err := service.EnsureUserStorage(repo.Db, user.ID); err != nil {
		t.Fatal(err)
	}
	var count int64
	if err := repo.Db.Model(&model.UserStorage{}).
		Where("user_id = ?", user.ID).
		Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("ledger rows = %d, want 1", count)
	}
}
