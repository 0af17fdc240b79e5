package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PanelConfig 仪表盘配置
//
// 包含车速表、双闪、环境光、喇叭和发动机启动的全部可调参数。
// 默认值即仪表盘的标准行为，配置文件只需覆盖需要修改的字段。
//
// 配置文件位置: assets/config/panel.yaml
type PanelConfig struct {
	Speedometer SpeedometerConfig `yaml:"speedometer"`
	Hazard      HazardConfig      `yaml:"hazard"`
	Ambient     AmbientConfig     `yaml:"ambient"`
	Horn        HornConfig        `yaml:"horn"`
	Engine      EngineConfig      `yaml:"engine"`
}

// SpeedometerConfig 车速表配置
type SpeedometerConfig struct {
	// RedlineVelocity 红线速度（像素/毫秒），达到即视为 100%
	RedlineVelocity float64 `yaml:"redlineVelocity"`

	// DecayFactor 每次衰减的乘数
	DecayFactor float64 `yaml:"decayFactor"`

	// DecayFloor 低于该百分比时直接归零
	DecayFloor float64 `yaml:"decayFloor"`

	// DecayIntervalMs 衰减周期（毫秒）
	DecayIntervalMs int `yaml:"decayIntervalMs"`

	// MinAngle / MaxAngle 指针角度范围（度）
	MinAngle float64 `yaml:"minAngle"`
	MaxAngle float64 `yaml:"maxAngle"`

	// JitterThreshold 超过该速度才叠加抖动
	JitterThreshold float64 `yaml:"jitterThreshold"`

	// JitterAmplitude 抖动总幅度（度），实际范围为 ±Amplitude/2
	JitterAmplitude float64 `yaml:"jitterAmplitude"`

	// ShakeThreshold 超过该速度仪表盘开始抖动
	ShakeThreshold float64 `yaml:"shakeThreshold"`

	// ViolentThreshold 超过该速度剧烈抖动并运动模糊
	ViolentThreshold float64 `yaml:"violentThreshold"`
}

// HazardConfig 双闪配置
//
// 所有时间以毫秒为单位，与音频循环中的"咔哒"声对齐。
type HazardConfig struct {
	LoopPeriodMs   int     `yaml:"loopPeriodMs"`
	OnOffsetMs     int     `yaml:"onOffsetMs"`
	OnDurationMs   int     `yaml:"onDurationMs"`
	LampOnOpacity  float64 `yaml:"lampOnOpacity"`
	LampOffOpacity float64 `yaml:"lampOffOpacity"`
	IconOnOpacity  float64 `yaml:"iconOnOpacity"`
	IconOffOpacity float64 `yaml:"iconOffOpacity"`
}

// AmbientConfig 环境光配置
type AmbientConfig struct {
	// RecomputeIntervalMs 重新计算周期（毫秒）
	RecomputeIntervalMs int `yaml:"recomputeIntervalMs"`

	// IlluminationThreshold 最终不透明度超过该值时点亮仪表盘背光
	IlluminationThreshold float64 `yaml:"illuminationThreshold"`

	// 月亮贡献的暗度范围
	MoonDarknessMin float64 `yaml:"moonDarknessMin"`
	MoonDarknessMax float64 `yaml:"moonDarknessMax"`

	// 黄昏/黎明过渡时段（小时，24小时制）
	DuskStartHour float64 `yaml:"duskStartHour"`
	DuskEndHour   float64 `yaml:"duskEndHour"`
	DawnStartHour float64 `yaml:"dawnStartHour"`
	DawnEndHour   float64 `yaml:"dawnEndHour"`
}

// HornConfig 喇叭配置
type HornConfig struct {
	// AlternateChance 使用搞笑喇叭的概率
	AlternateChance float64 `yaml:"alternateChance"`

	// PressScale / PressDurationMs 按下反馈
	PressScale      float64 `yaml:"pressScale"`
	PressDurationMs int     `yaml:"pressDurationMs"`
}

// EngineConfig 发动机启动配置
type EngineConfig struct {
	// RevealDelayMs 启动按钮淡出到仪表盘升起的延迟
	RevealDelayMs int `yaml:"revealDelayMs"`
}

// DefaultPanelConfig 返回默认仪表盘配置
func DefaultPanelConfig() *PanelConfig {
	return &PanelConfig{
		Speedometer: SpeedometerConfig{
			RedlineVelocity:  5,
			DecayFactor:      0.8,
			DecayFloor:       1,
			DecayIntervalMs:  100,
			MinAngle:         -120,
			MaxAngle:         120,
			JitterThreshold:  20,
			JitterAmplitude:  3,
			ShakeThreshold:   75,
			ViolentThreshold: 95,
		},
		Hazard: HazardConfig{
			LoopPeriodMs:   780,
			OnOffsetMs:     220,
			OnDurationMs:   350,
			LampOnOpacity:  1,
			LampOffOpacity: 0,
			IconOnOpacity:  1,
			IconOffOpacity: 0.3,
		},
		Ambient: AmbientConfig{
			RecomputeIntervalMs:   60000,
			IlluminationThreshold: 0.2,
			MoonDarknessMin:       0.4,
			MoonDarknessMax:       0.9,
			DuskStartHour:         18,
			DuskEndHour:           20,
			DawnStartHour:         6,
			DawnEndHour:           8,
		},
		Horn: HornConfig{
			AlternateChance: 1.0 / 6.0,
			PressScale:      0.9,
			PressDurationMs: 100,
		},
		Engine: EngineConfig{
			RevealDelayMs: 600,
		},
	}
}

// LoadPanelConfig 加载仪表盘配置
//
// 文件中的字段覆盖默认值，未出现的字段保持默认。
//
// 参数:
//   - path: 配置文件路径（如 "assets/config/panel.yaml"）
//
// 返回:
//   - *PanelConfig: 合并并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadPanelConfig(path string) (*PanelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panel config: %w", err)
	}
	return ParsePanelConfig(data)
}

// ParsePanelConfig 从 YAML 数据解析仪表盘配置
func ParsePanelConfig(data []byte) (*PanelConfig, error) {
	cfg := DefaultPanelConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse panel config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid panel config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查项：
//   - 红线速度和周期必须为正
//   - 衰减因子在 (0, 1) 区间
//   - 抖动阈值满足 shake <= violent
//   - 双闪点亮窗口必须落在循环周期内
//   - 月亮暗度范围有序且在 [0, 1]
//   - 过渡时段有序
func (c *PanelConfig) Validate() error {
	s := c.Speedometer
	if s.RedlineVelocity <= 0 {
		return fmt.Errorf("speedometer redlineVelocity must be > 0, got %.2f", s.RedlineVelocity)
	}
	if s.DecayFactor <= 0 || s.DecayFactor >= 1 {
		return fmt.Errorf("speedometer decayFactor must be in (0,1), got %.2f", s.DecayFactor)
	}
	if s.DecayFloor < 0 {
		return fmt.Errorf("speedometer decayFloor must be >= 0, got %.2f", s.DecayFloor)
	}
	if s.DecayIntervalMs <= 0 {
		return fmt.Errorf("speedometer decayIntervalMs must be > 0, got %d", s.DecayIntervalMs)
	}
	if s.MinAngle >= s.MaxAngle {
		return fmt.Errorf("speedometer angle range invalid: min(%.1f) >= max(%.1f)", s.MinAngle, s.MaxAngle)
	}
	if s.ShakeThreshold > s.ViolentThreshold {
		return fmt.Errorf("speedometer shakeThreshold(%.1f) > violentThreshold(%.1f)", s.ShakeThreshold, s.ViolentThreshold)
	}

	h := c.Hazard
	if h.LoopPeriodMs <= 0 {
		return fmt.Errorf("hazard loopPeriodMs must be > 0, got %d", h.LoopPeriodMs)
	}
	if h.OnOffsetMs < 0 || h.OnDurationMs <= 0 || h.OnOffsetMs+h.OnDurationMs > h.LoopPeriodMs {
		return fmt.Errorf("hazard on window [%d,%d) outside loop of %dms",
			h.OnOffsetMs, h.OnOffsetMs+h.OnDurationMs, h.LoopPeriodMs)
	}

	a := c.Ambient
	if a.RecomputeIntervalMs <= 0 {
		return fmt.Errorf("ambient recomputeIntervalMs must be > 0, got %d", a.RecomputeIntervalMs)
	}
	if a.MoonDarknessMin < 0 || a.MoonDarknessMax > 1 || a.MoonDarknessMin > a.MoonDarknessMax {
		return fmt.Errorf("ambient moon darkness range invalid: [%.2f, %.2f]", a.MoonDarknessMin, a.MoonDarknessMax)
	}
	if !(a.DawnStartHour < a.DawnEndHour && a.DawnEndHour <= a.DuskStartHour && a.DuskStartHour < a.DuskEndHour && a.DuskEndHour <= 24) {
		return fmt.Errorf("ambient transition hours out of order: dawn %.1f-%.1f dusk %.1f-%.1f",
			a.DawnStartHour, a.DawnEndHour, a.DuskStartHour, a.DuskEndHour)
	}

	if c.Horn.AlternateChance < 0 || c.Horn.AlternateChance > 1 {
		return fmt.Errorf("horn alternateChance must be in [0,1], got %.2f", c.Horn.AlternateChance)
	}
	if c.Engine.RevealDelayMs < 0 {
		return fmt.Errorf("engine revealDelayMs must be >= 0, got %d", c.Engine.RevealDelayMs)
	}

	return nil
}

// DecayInterval 返回衰减周期
func (s SpeedometerConfig) DecayInterval() time.Duration {
	return time.Duration(s.DecayIntervalMs) * time.Millisecond
}

// LoopPeriod 返回双闪循环周期
func (h HazardConfig) LoopPeriod() time.Duration {
	return time.Duration(h.LoopPeriodMs) * time.Millisecond
}

// OnStart 返回点亮窗口起点（循环内偏移）
func (h HazardConfig) OnStart() time.Duration {
	return time.Duration(h.OnOffsetMs) * time.Millisecond
}

// OnEnd 返回点亮窗口终点（不含）
func (h HazardConfig) OnEnd() time.Duration {
	return time.Duration(h.OnOffsetMs+h.OnDurationMs) * time.Millisecond
}

// RecomputeInterval 返回环境光重新计算周期
func (a AmbientConfig) RecomputeInterval() time.Duration {
	return time.Duration(a.RecomputeIntervalMs) * time.Millisecond
}

// PressDuration 返回喇叭按下反馈时长
func (h HornConfig) PressDuration() time.Duration {
	return time.Duration(h.PressDurationMs) * time.Millisecond
}

// RevealDelay 返回仪表盘升起延迟
func (e EngineConfig) RevealDelay() time.Duration {
	return time.Duration(e.RevealDelayMs) * time.Millisecond
}
