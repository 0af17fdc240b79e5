package game

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	sessionObject   = "session"
	sessionProperty = "engine"
)

// SessionRecord 持久化的会话记录
type SessionRecord struct {
	SessionID     string `yaml:"sessionId"`
	EngineStarted bool   `yaml:"engineStarted"`
}

// SessionStore 记录“本次浏览会话中引擎是否已启动”
//
// 引擎启动后，在同一会话中切换页面时仪表盘直接显示，不再出现启动按钮。
// 记录带有会话ID：ID 不同的旧记录视为未启动，因此进程重启（新会话）会重新显示启动按钮。
// gdataManager 为 nil 时只在内存中记录，效果仅限当前进程。
type SessionStore struct {
	gdataManager *gdata.Manager
	sessionID    string
	memory       SessionRecord
}

// NewSessionID 生成进程级的会话ID
func NewSessionID() string {
	return fmt.Sprintf("%d-%d", os.Getpid(), time.Now().UnixNano())
}

// NewSessionStore 创建会话存储
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级为内存模式）
//   - sessionID: 当前会话ID，为空时自动生成
func NewSessionStore(gdataManager *gdata.Manager, sessionID string) *SessionStore {
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	return &SessionStore{
		gdataManager: gdataManager,
		sessionID:    sessionID,
		memory:       SessionRecord{SessionID: sessionID},
	}
}

// SessionID 返回当前会话ID
func (s *SessionStore) SessionID() string {
	return s.sessionID
}

// EngineStarted 返回本会话中引擎是否已启动
// 读取失败时视为未启动
func (s *SessionStore) EngineStarted() bool {
	if s.gdataManager == nil {
		return s.memory.EngineStarted
	}
	if !s.gdataManager.ObjectPropExists(sessionObject, sessionProperty) {
		return false
	}

	data, err := s.gdataManager.LoadObjectProp(sessionObject, sessionProperty)
	if err != nil {
		log.Printf("[SessionStore] Warning: Failed to load session record: %v", err)
		return false
	}

	var record SessionRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		log.Printf("[SessionStore] Warning: Corrupt session record: %v", err)
		return false
	}
	return record.SessionID == s.sessionID && record.EngineStarted
}

// MarkEngineStarted 记录引擎已启动
func (s *SessionStore) MarkEngineStarted() error {
	return s.save(true)
}

// End 结束会话，清除启动标记
func (s *SessionStore) End() error {
	return s.save(false)
}

func (s *SessionStore) save(started bool) error {
	s.memory = SessionRecord{SessionID: s.sessionID, EngineStarted: started}
	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&s.memory)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(sessionObject, sessionProperty, data); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}
