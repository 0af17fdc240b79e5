package game

import (
	"log"

	"github.com/decker502/garage/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "mateos-garage"

// OpenStorage 打开 gdata 存储
//
// 失败时记录日志并返回 nil：SessionStore 与 SettingsManager 接受 nil，
// 此时退化为仅在内存中保存，不影响仪表盘运行。
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Storage] Warning: %v", err)
	} else if dir := utils.GetStoragePath(); dir != "" {
		log.Printf("[Storage] Using %s", dir)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: gdata unavailable, using in-memory state: %v", err)
		return nil
	}
	return manager
}
