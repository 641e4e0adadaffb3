package service_test

import (
	"DocVault/internal/repo"
	"DocVault/internal/service"
	"DocVault/model"
	"testing"
)

func countFolderShares(t *testing.T, folderID uint64) int64 {
	t.Helper()
	var count int64
	if err := repo.Db.Model(&model.FolderSharedUser{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	return count
}

func countDocumentShares(t *testing.T, documentID uint64) int64 {
	t.Helper()
	var count int64
	if err := repo.Db.Model(&model.DocumentSharedUser{}).
		Where("document_id = ?", documentID).
		Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	return count
}

// 共享根文件夹应该级联到所有后代
func TestShareFolderCascades(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, owner, nil, "team")
	sub := createTestFolder(t, owner, &root.ID, "reports")
	doc := createTestDocumentRow(t, owner, &sub.ID, "q1.pdf", 10)

	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}

	if n := countFolderShares(t, root.ID); n != 1 {
		t.Fatalf("root shares = %d, want 1", n)
	}
	if n := countFolderShares(t, sub.ID); n != 1 {
		t.Fatalf("sub shares = %d, want 1", n)
	}
	if n := countDocumentShares(t, doc.ID); n != 1 {
		t.Fatalf("doc shares = %d, want 1", n)
	}

	recipients, err := service.DocumentSharedWith(doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(recipients) != 1 || recipients[0].ID != target.ID {
		t.Fatalf("document recipients = %d users, want just user %d", len(recipients), target.ID)
	}

	// 共享后目标用户可见
	if _, err := service.GetFolderForUser(sub.ID, target.ID); err != nil {
		t.Fatalf("target cannot see shared subfolder: %v", err)
	}
	fetched, err := service.GetDocumentForUser(doc.ID, target.ID)
	if err != nil {
		t.Fatalf("target cannot see shared document: %v", err)
	}
	if !fetched.SharedWithMe {
		t.Fatal("shared document should be flagged for the target")
	}
}

// 后代作者本人不需要共享记录
func TestShareFolderSkipsDescendantAuthors(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, owner, nil, "joint")
	// target 已经在层级里拥有自己的文档
	doc := createTestDocumentRow(t, target, &root.ID, "mine.txt", 5)

	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}
	if n := countFolderShares(t, root.ID); n != 1 {
		t.Fatalf("root shares = %d, want 1", n)
	}
	if n := countDocumentShares(t, doc.ID); n != 0 {
		t.Fatalf("author-owned document got %d shared records, want 0", n)
	}
}

// 重复共享是幂等的
func TestShareFolderIdempotent(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, owner, nil, "dup")
	sub := createTestFolder(t, owner, &root.ID, "inner")

	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}
	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}
	if n := countFolderShares(t, sub.ID); n != 1 {
		t.Fatalf("sub shares after re-share = %d, want 1", n)
	}
}

// 只有根文件夹的作者可以共享
func TestCanShareFolderPolicy(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	other := createTestUser(t)

	root := createTestFolder(t, owner, nil, "top")
	sub := createTestFolder(t, owner, &root.ID, "nested")

	if !service.CanShareFolder(owner, root) {
		t.Fatal("author should be able to share a root folder")
	}
	if service.CanShareFolder(owner, sub) {
		t.Fatal("nested folders must not be shareable")
	}
	if service.CanShareFolder(other, root) {
		t.Fatal("non-authors must not share")
	}
}

// shared_parent 沿共享链向上 遇到断点停止
func TestSharedParent(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, owner, nil, "chain")
	mid := createTestFolder(t, owner, &root.ID, "mid")
	leaf := createTestFolder(t, owner, &mid.ID, "leaf")

	// 未共享时节点是自己的 shared parent
	parent, err := service.SharedParent(leaf)
	if err != nil {
		t.Fatal(err)
	}
	if parent.ID != leaf.ID {
		t.Fatalf("unshared leaf should be its own shared parent, got %d", parent.ID)
	}

	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}

	parent, err = service.SharedParent(leaf)
	if err != nil {
		t.Fatal(err)
	}
	if parent.ID != root.ID {
		t.Fatalf("shared parent = %d, want root %d", parent.ID, root.ID)
	}

	// 中间断链后向上的共享祖先不再可达
	if err := repo.Db.Where("folder_id = ?", mid.ID).
		Delete(&model.FolderSharedUser{}).Error; err != nil {
		t.Fatal(err)
	}
	parent, err = service.SharedParent(leaf)
	if err != nil {
		t.Fatal(err)
	}
	if parent.ID != leaf.ID {
		t.Fatalf("broken chain should stop at the leaf, got %d", parent.ID)
	}
}

// 在共享层级内创建的文件夹继承共享用户
func TestCreateFolderInheritsShares(t *testing.T) {
	cleanTables(t)
	owner := createTestUser(t)
	target := createTestUser(t)

	root := createTestFolder(t, owner, nil, "inherit")
	if err := service.ShareFolder(root, []model.User{*target}); err != nil {
		t.Fatal(err)
	}

	child := createTestFolder(t, owner, &root.ID, "late")
	shared, err := service.IsFolderSharedWith(child.ID, target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !shared {
		t.Fatal("folder created inside a shared hierarchy should inherit its users")
	}
}
