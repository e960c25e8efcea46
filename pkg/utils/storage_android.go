//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot 应用私有数据目录的父目录
const androidDataRoot = "/data/data"

// EnsureStorageDir 在打开 gdata 之前检查 Android 存储目录
//
// gdata 在 Android 上直接使用 /data/data/{package} 作为根目录，
// 目录不存在时 gdata.Open 只返回一个笼统的错误。这里先给出具体原因，
// 并提前创建 objects 对应的对象目录（gdata 保存时只创建一级目录）。
func EnsureStorageDir(objects ...string) error {
	app, err := androidPackage()
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}

	root := filepath.Join(androidDataRoot, app)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("app data directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("app data path %s is not a directory", root)
	}

	for _, object := range objects {
		dir := filepath.Join(root, object)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// androidPackage 从 /proc/self/cmdline 读取包名
// 应用进程的 cmdline 只有包名一个参数，gdata 也用它定位数据目录
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	name := string(bytes.TrimRight(data, "\n"))
	if name == "" {
		return "", errors.New("empty /proc/self/cmdline")
	}
	return name, nil
}
