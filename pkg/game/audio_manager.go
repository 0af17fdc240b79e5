package game

import (
	"log"
	"time"
)

// AudioCue is a named, seekable audio source.
// *audio.Player satisfies this interface; tests use a fake.
type AudioCue interface {
	Play()
	Pause()
	IsPlaying() bool
	Position() time.Duration
	SetPosition(offset time.Duration) error
	SetVolume(volume float64)
}

// AudioManager 音频管理器
// 职责：
//   - 按资源ID管理仪表盘的提示音（启动、喇叭、双闪滴答）
//   - 应用 SettingsManager 中的音量与静音设置
//   - 加载失败时降级为静默（返回 false），不影响视觉效果
//
// 静音时提示音仍以 0 音量播放，这样双闪的音频时钟继续前进，灯光同步不受影响。
type AudioManager struct {
	resourceManager *ResourceManager    // 资源管理器（用于按ID加载提示音，可为 nil）
	settingsManager *SettingsManager    // 设置管理器（用于读取音量设置，可为 nil）
	cues            map[string]AudioCue // 提示音缓存（资源ID -> 播放器）
	failed          map[string]bool     // 已加载失败的资源ID，避免每帧重复尝试
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（可为 nil，此时只能使用 RegisterCue 注册的提示音）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		cues:            make(map[string]AudioCue),
		failed:          make(map[string]bool),
	}
}

// RegisterCue 注册（或替换）一个提示音
func (am *AudioManager) RegisterCue(cueID string, cue AudioCue) {
	am.cues[cueID] = cue
	delete(am.failed, cueID)
}

// Cue 获取或加载提示音
//
// 返回：
//   - AudioCue: 提示音（不存在或加载失败时为 nil）
//   - bool: 是否可用
func (am *AudioManager) Cue(cueID string) (AudioCue, bool) {
	if cue, exists := am.cues[cueID]; exists {
		return cue, true
	}
	if am.failed[cueID] || am.resourceManager == nil {
		return nil, false
	}

	cue, err := am.resourceManager.LoadCueByID(cueID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load cue %s: %v", cueID, err)
		am.failed[cueID] = true
		return nil, false
	}
	am.cues[cueID] = cue
	return cue, true
}

// PlayCue 从当前位置继续播放提示音
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayCue(cueID string) bool {
	cue, ok := am.Cue(cueID)
	if !ok {
		return false
	}
	cue.SetVolume(am.effectiveVolume())
	cue.Play()
	return true
}

// RestartCue 将提示音倒回开头后播放（喇叭连按时每次都从头响）
func (am *AudioManager) RestartCue(cueID string) bool {
	cue, ok := am.Cue(cueID)
	if !ok {
		return false
	}
	if err := cue.SetPosition(0); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %s: %v", cueID, err)
	}
	cue.SetVolume(am.effectiveVolume())
	cue.Play()
	return true
}

// PauseCue 暂停提示音（保留位置）
func (am *AudioManager) PauseCue(cueID string) {
	if cue, exists := am.cues[cueID]; exists {
		cue.Pause()
	}
}

// StopCue 暂停提示音并将位置归零
func (am *AudioManager) StopCue(cueID string) {
	cue, exists := am.cues[cueID]
	if !exists {
		return
	}
	cue.Pause()
	if err := cue.SetPosition(0); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind cue %s: %v", cueID, err)
	}
}

// SetSoundVolume 设置音效音量并立即应用到所有已加载的提示音
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	am.applyVolume()
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetMuted(muted)
	}
	am.applyVolume()
}

// IsMuted 返回是否静音
func (am *AudioManager) IsMuted() bool {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().Muted
	}
	return false
}

// Preload 预加载提示音，避免首次播放时的延迟
func (am *AudioManager) Preload(cueIDs []string) {
	loaded := 0
	for _, id := range cueIDs {
		if _, ok := am.Cue(id); ok {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d cues", loaded, len(cueIDs))
}

func (am *AudioManager) applyVolume() {
	volume := am.effectiveVolume()
	for _, cue := range am.cues {
		cue.SetVolume(volume)
	}
}

// effectiveVolume 返回考虑静音后的实际音量
func (am *AudioManager) effectiveVolume() float64 {
	if am.settingsManager == nil {
		return 0.8 // 默认值
	}
	settings := am.settingsManager.GetSettings()
	if settings.Muted {
		return 0
	}
	return settings.SoundVolume
}
