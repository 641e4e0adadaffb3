package service_test

import (
	"DocVault/config"
	"DocVault/internal/repo"
	"DocVault/internal/service"
	"DocVault/internal/storage"
	"DocVault/model"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"golang.org/x/net/context"
)

// ensureTestBucket ensures the test bucket exists.
func ensureTestBucket() {
	ctx := context.Background()
	exists, err := storage.MinioTest.Client.BucketExists(ctx, storage.MinioTest.Bucket)
	if err != nil {
		panic(err)
	}
	if !exists {
		err = storage.MinioTest.Client.MakeBucket(ctx, storage.MinioTest.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			panic(err)
		}
	}
}

// TestMain sets up the test environment.
func TestMain(m *testing.M) {
	config.InitConfig()
	// 测试全程使用独立的测试桶
	config.AppConfig.BucketName = config.AppConfig.BucketNameTest
	repo.InitMysqlTest()
	repo.InitRedis()
	storage.InitMinioTest()
	storage.Default = storage.DefaultTest
	service.UseHookSet(service.DefaultHookSet{})

	ensureTestBucket()

	// 在测试开始前清理所有表的数据
	cleanupAllTables()

	code := m.Run()
	os.Exit(code)
}

// cleanupAllTables 清理所有表的数据（不删除表结构）
func cleanupAllTables() {
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 0")

	tables := []string{
		"document_shared_user",
		"folder_shared_user",
		"document",
		"folder",
		"user_storage",
		"user_db",
	}
	for _, table := range tables {
		repo.Db.Exec("DELETE FROM " + table)
	}

	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 1")
	repo.Redis.FlushDB(context.Background())

	log.Println("[testmain] all tables cleaned")
}

// 清理测试数据
func cleanTables(t *testing.T) {
	t.Helper()
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	tables := []string{
		"document_shared_user",
		"folder_shared_user",
		"document",
		"folder",
		"user_storage",
		"user_db",
	}
	for _, table := range tables {
		if err := repo.Db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clean %s failed: %v", table, err)
		}
	}
	repo.Db.Exec("SET FOREIGN_KEY_CHECKS = 1")
	repo.Redis.FlushDB(context.Background())
}

var testUserSeq int

// 创建测试用户
func createTestUser(t *testing.T) *model.User {
	t.Helper()
	testUserSeq++
	user := &model.User{
		UserName: fmt.Sprintf("test_user_%d", testUserSeq),
		Password: "123456",
		Email:    fmt.Sprintf("test_%d@test.com", testUserSeq),
		IsActive: true,
	}
	if err := service.CreateUser(user); err != nil {
		t.Fatal(err)
	}
	return user
}

// 创建测试文件夹
func createTestFolder(t *testing.T, user *model.User, parentID *uint64, name string) *model.Folder {
	t.Helper()
	folder, err := service.CreateFolder(user, parentID, name)
	if err != nil {
		t.Fatalf("CreateFolder %s failed: %v", name, err)
	}
	return folder
}

// createTestDocumentRow inserts a document record directly, bypassing blob
// storage, for tests that only exercise the database side.
func createTestDocumentRow(t *testing.T, user *model.User, folderID *uint64, name string, size int64) *model.Document {
	t.Helper()
	document := &model.Document{
		Name:             name,
		OriginalFilename: name,
		FolderID:         folderID,
		AuthorID:         user.ID,
		BucketName:       config.AppConfig.BucketName,
		ObjectName:       "documents/test-" + name,
		Size:             size,
		ModifiedAt:       time.Now(),
		ModifiedByID:     user.ID,
	}
	if err := repo.Db.Create(document).Error; err != nil {
		t.Fatalf("insert document %s failed: %v", name, err)
	}
	if err := service.ReserveStorage(repo.Db, user.ID, size); err != nil {
		t.Fatalf("reserve storage for %s failed: %v", name, err)
	}
	return document
}
