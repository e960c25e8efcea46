package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 移动端构建（-tags mobile）恒为 true；桌面端可以通过
// SHOOTER_MOBILE_EMULATE=1 强制启用移动模式（用于本地调试触屏提示）
func IsMobile() bool {
	return mobileBuild || os.Getenv("SHOOTER_MOBILE_EMULATE") == "1"
}

// PointerVerb 提示文字中描述指针操作的动词
func PointerVerb() string {
	if IsMobile() {
		return "Tap"
	}
	return "Click"
}
