// Package main generates the bcrypt admin password hash for initial setup.
// It prints both the raw hash and the base64 form expected by
// ADMIN_PASSWORD_HASH_BASE64 (base64 keeps bcrypt's $ separators out of
// .env parsing).
package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/askanon/board/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}
	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}
	fmt.Println("bcrypt hash:", hash)
	fmt.Println("ADMIN_PASSWORD_HASH_BASE64:", base64.StdEncoding.EncodeToString([]byte(hash)))
}
