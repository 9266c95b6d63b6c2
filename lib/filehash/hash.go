package filehash

import (
	"crypto/md5"
	"encoding/base64"
	"io"
	"os"
)

// ContentMD5 returns the base64 MD5 of the file, as expected by the Content-MD5 header.
func ContentMD5(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return ReaderMD5(file)
}

// ReaderMD5 consumes r and returns its base64 MD5.
func ReaderMD5(r io.Reader) (string, error) {
	hashMD5 := md5.New()
	if _, err := io.Copy(hashMD5, r); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hashMD5.Sum(nil)), nil
}
