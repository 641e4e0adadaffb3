package service_test

import (
	"DocVault/internal/repo"
	"DocVault/internal/service"
	"DocVault/model"
	"context"
	"errors"
	"testing"
)

// 删除文件夹释放所有后代文档占用的配额并清掉全部记录
func TestDeleteFolderReleasesQuota(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, user, nil, "doomed")
	sub := createTestFolder(t, user, &root.ID, "inner")
	createTestDocumentRow(t, user, &root.ID, "a.txt", 100)
	createTestDocumentRow(t, user, &sub.ID, "b.txt", 200)
	createTestDocumentRow(t, user, &sub.ID, "c.txt", 300)

	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}

	before := ledger(t, user.ID).BytesUsed
	if before != 600 {
		t.Fatalf("precondition: bytes_used = %d, want 600", before)
	}

	if err := service.DeleteFolder(context.Background(), user.ID, root.ID); err != nil {
		t.Fatal(err)
	}

	if got := ledger(t, user.ID).BytesUsed; got != 0 {
		t.Fatalf("bytes_used after delete = %d, want 0", got)
	}

	var folders, documents, folderShares, documentShares int64
	repo.Db.Model(&model.Folder{}).Count(&folders)
	repo.Db.Model(&model.Document{}).Count(&documents)
	repo.Db.Model(&model.FolderSharedUser{}).Count(&folderShares)
	repo.Db.Model(&model.DocumentSharedUser{}).Count(&documentShares)
	if folders != 0 || documents != 0 || folderShares != 0 || documentShares != 0 {
		t.Fatalf("leftover rows: folders=%d documents=%d folderShares=%d documentShares=%d",
			folders, documents, folderShares, documentShares)
	}
}

// 非作者删除返回 not found 即便文件夹已共享给他
func TestDeleteFolderAuthorOnly(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, owner, nil, "shared")
	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}

	err := service.DeleteFolder(context.Background(), target.ID, root.ID)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-author, got %v", err)
	}
	if _, err := service.GetFolderForUser(root.ID, owner.ID); err != nil {
		t.Fatalf("folder should survive: %v", err)
	}
}

// 删除单个文档释放其配额
func TestDeleteDocument(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	folder := createTestFolder(t, user, nil, "hold")
	doc := createTestDocumentRow(t, user, &folder.ID, "gone.txt", 120)

	if err := service.DeleteDocument(context.Background(), user.ID, doc.ID); err != nil {
		t.Fatal(err)
	}
	if got := ledger(t, user.ID).BytesUsed; got != 0 {
		t.Fatalf("bytes_used = %d, want 0", got)
	}

	var count int64
	repo.Db.Model(&model.Document{}).Where("id = ?", doc.ID).Count(&count)
	if count != 0 {
		t.Fatal("document row should be gone")
	}
}

// 非作者不能删除文档
func TestDeleteDocumentAuthorOnly(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	other := createTestUser(t)

	doc := createTestDocumentRow(t, owner, nil, "keep.txt", 10)

	err := service.DeleteDocument(context.Background(), other.ID, doc.ID)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// 删除提交后作者的配额缓存立即反映释放
func TestDeleteDocumentRefreshesStorageCache(t *testing.T) {
	cleanTables(t)
	user := createTestUser(t)

	document := uploadTestDocument(t, user, nil, "stale.txt", "bytes")
	if _, err := service.GetUserStorage(user.ID); err != nil {
		t.Fatal(err)
	}

	if err := service.DeleteDocument(context.Background(), user.ID, document.ID); err != nil {
		t.Fatal(err)
	}

	after, err := service.GetUserStorage(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.BytesUsed != 0 {
		t.Fatalf("bytes_used after delete = %d, want 0", after.BytesUsed)
	}
}

// 删除共享文档后 接收者的列表缓存不会再返回它
func TestDeleteDocumentClearsRecipientListCache(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, owner, nil, "mailbox")
	document := uploadTestDocument(t, owner, &root.ID, "note.txt", "hi")
	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}

	// 预热接收者的列表缓存
	before, err := service.Members(&root.ID, true, &target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(before) != 1 {
		t.Fatalf("target should see 1 member before delete, got %d", len(before))
	}

	if err := service.DeleteDocument(context.Background(), owner.ID, document.ID); err != nil {
		t.Fatal(err)
	}

	after, err := service.Members(&root.ID, true, &target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 0 {
		t.Fatalf("target should see nothing after delete, got %d members", len(after))
	}
}

// 删除文件夹后子树内每个文档作者的配额缓存都被刷新
func TestDeleteFolderRefreshesStorageCaches(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	contributor := createTestUser(t)

	root := createTestFolder(t, owner, nil, "mixed-owners")
	createTestDocumentRow(t, owner, &root.ID, "own.txt", 40)
	createTestDocumentRow(t, contributor, &root.ID, "theirs.txt", 60)

	// 预热两个作者的缓存
	if _, err := service.GetUserStorage(owner.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := service.GetUserStorage(contributor.ID); err != nil {
		t.Fatal(err)
	}

	if err := service.DeleteFolder(context.Background(), owner.ID, root.ID); err != nil {
		t.Fatal(err)
	}

	ownerAfter, err := service.GetUserStorage(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ownerAfter.BytesUsed != 0 {
		t.Fatalf("owner bytes_used = %d, want 0", ownerAfter.BytesUsed)
	}
	contributorAfter, err := service.GetUserStorage(contributor.ID)
	if err != nil {
		t.Fatal(err)
	}
	if contributorAfter.BytesUsed != 0 {
		t.Fatalf("contributor bytes_used = %d, want 0", contributorAfter.BytesUsed)
	}
}
