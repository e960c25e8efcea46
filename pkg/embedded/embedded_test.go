package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

// resetForTest 重置包状态，测试结束后恢复
func resetForTest(t *testing.T) {
	t.Helper()
	prevFS, prevInit := dataFS, initialized
	dataFS, initialized = nil, false
	t.Cleanup(func() {
		dataFS, initialized = prevFS, prevInit
	})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"config/game.yaml": &fstest.MapFile{Data: []byte("targetSize: 20\n")},
	}
}

// TestNotInitialized 未初始化时读取返回 ErrNotInitialized
func TestNotInitialized(t *testing.T) {
	resetForTest(t)

	if _, err := ReadFile(DefaultGameConfigPath); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
}

func TestReadFile(t *testing.T) {
	resetForTest(t)
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"默认配置", DefaultGameConfigPath, "targetSize: 20\n", false},
		{"带 ./ 前缀", "./data/config/game.yaml", "targetSize: 20\n", false},
		{"未知前缀", "assets/config/game.yaml", "", true},
		{"文件不存在", "data/config/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}
