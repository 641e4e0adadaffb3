package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash := GetPwd("s3cret")
	if hash == "s3cret" {
		t.Fatal("hash must differ from the plaintext")
	}
	if !CheckPwd("s3cret", hash) {
		t.Fatal("correct password should verify")
	}
	if CheckPwd("wrong", hash) {
		t.Fatal("wrong password should not verify")
	}
}
