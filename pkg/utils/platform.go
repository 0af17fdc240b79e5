//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false；设置 GARAGE_MOBILE_EMULATE=1 可在桌面上模拟移动端
// （显示触摸操作提示、启用拖拽滚动）
func IsMobile() bool {
	return os.Getenv("GARAGE_MOBILE_EMULATE") == "1"
}
