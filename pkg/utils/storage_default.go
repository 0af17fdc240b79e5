//go:build !android

package utils

// EnsureStorageDir 非 Android 平台无需准备，gdata 会自行创建目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串（由 gdata 决定位置）
func GetStoragePath() string {
	return ""
}
