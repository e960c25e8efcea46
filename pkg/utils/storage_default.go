//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需准备
// gdata 会在用户数据目录下自动创建 AppName 目录，对象目录在首次保存时创建
func EnsureStorageDir(objects ...string) error {
	return nil
}
