package service_test

import (
	"DocVault/internal/service"
	"DocVault/model"
	"testing"
)

// 创建用户时密码被散列 账本同事务建立
func TestCreateUser(t *testing.T) {
	cleanTables(t)

	user := &model.User{
		UserName: "alice",
		Password: "plain-secret",
		Email:    "alice@test.com",
		IsActive: true,
	}
	if err := service.CreateUser(user); err != nil {
		t.Fatal(err)
	}
	if user.ID == 0 {
		t.Fatal("user ID should not be zero after create")
	}
	if user.Password == "plain-secret" {
		t.Fatal("password must be hashed")
	}
	if err := service.CheckPassword("alice", "plain-secret"); err != nil {
		t.Fatalf("CheckPassword failed: %v", err)
	}
	if err := service.CheckPassword("alice", "wrong"); err == nil {
		t.Fatal("wrong password should fail")
	}
	if _, err := service.GetUserStorage(user.ID); err != nil {
		t.Fatalf("storage ledger missing: %v", err)
	}
}

// DisplayName 优先昵称
func TestDisplayName(t *testing.T) {
	user := &model.User{UserName: "bob", NickName: ""}
	if user.DisplayName() != "bob" {
		t.Fatal("fallback to username expected")
	}
	user.NickName = "Bobby"
	if user.DisplayName() != "Bobby" {
		t.Fatal("nickname should win")
	}
}
