package service

import (
	"DocVault/internal/repo"
	"DocVault/model"
	"DocVault/utils"
	"errors"

	"gorm.io/gorm"
)

// CreateUser hashes the password and creates the user together with an
// empty storage ledger so quota checks never miss a row.
func CreateUser(user *model.User) error {
	// 对密码进行加密
	user.Password = utils.GetPwd(user.Password)
	return repo.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return EnsureUserStorage(tx, user.ID)
	})
}

// FindUserById returns the user by ID.
func FindUserById(userId uint64) (*model.User, error) {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsExist checks whether a user exists.
func IsExist(username string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).First(&user).Error; err != nil {
		return &model.User{}, err
	}
	return &user, nil
}

// CheckPassword verifies a user's password.
func CheckPassword(username, password string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).First(&user).Error; err != nil {
		return err
	}
	// 使用 bcrypt 验证密码
	if !utils.CheckPwd(password, user.Password) {
		return errors.New("password error")
	}
	return nil
}

// IsEmailExist checks whether an email exists.
func IsEmailExist(email string) error {
	var user model.User
	if err := repo.Db.Model(&model.User{}).Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	return nil
}

// FindUsersByIds loads users for a set of IDs, used when resolving share
// targets. Missing IDs are silently dropped.
func FindUsersByIds(ids []uint64) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := repo.Db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
