package utils

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// GetPwd hashes a password for storage.
func GetPwd(pwd string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt 只会在密码超长时报错
		log.Println("generate password hash error:", err)
		return ""
	}
	return string(hash)
}

// CheckPwd verifies a password against its stored hash.
func CheckPwd(pwd string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pwd)) == nil
}
