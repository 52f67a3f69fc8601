// Package settings 管理应用级用户设置的加载与保存。
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
)

// KeyBindings 导航按键绑定（键名，如 "W"、"Up"）
type KeyBindings struct {
	TiltUp    string `yaml:"tiltUp"`
	TiltDown  string `yaml:"tiltDown"`
	PanLeft   string `yaml:"panLeft"`
	PanRight  string `yaml:"panRight"`
	FovWiden  string `yaml:"fovWiden"`
	FovNarrow string `yaml:"fovNarrow"`
}

// Settings 全局应用设置
// 设置不绑定到具体漫游，对编辑器和漫游模式同时生效。
type Settings struct {
	// 音频设置
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0

	// 显示设置
	Fullscreen      bool `yaml:"fullscreen"`      // 启动时是否全屏
	InvertDragPitch bool `yaml:"invertDragPitch"` // 反转拖拽的俯仰方向

	// 引擎设置
	TextureCacheSize int `yaml:"textureCacheSize"` // 全景图缓存容量（张）

	// 按键绑定
	Keys KeyBindings `yaml:"keys"`
}

// Default 返回默认设置
func Default() *Settings {
	return &Settings{
		SoundEnabled:     true,
		SoundVolume:      0.8,
		Fullscreen:       false,
		InvertDragPitch:  false,
		TextureCacheSize: config.TextureCacheSize,
		Keys: KeyBindings{
			TiltUp:    config.DefaultKeyTiltUp,
			TiltDown:  config.DefaultKeyTiltDown,
			PanLeft:   config.DefaultKeyPanLeft,
			PanRight:  config.DefaultKeyPanRight,
			FovWiden:  config.DefaultKeyFovWiden,
			FovNarrow: config.DefaultKeyFovNarrow,
		},
	}
}

// Manager 设置管理器
// gdataManager 可为 nil（降级模式，仅内存设置）。
type Manager struct {
	gdataManager *gdata.Manager
	settings     *Settings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewManager 创建设置管理器并尝试加载已保存的设置
func NewManager(gdataManager *gdata.Manager) *Manager {
	m := &Manager{
		gdataManager: gdataManager,
		settings:     Default(),
	}
	if err := m.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[Settings] Warning: failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Load 从 gdata 加载设置；降级模式或属性不存在时使用默认值
func (m *Manager) Load() error {
	if m.gdataManager == nil {
		m.settings = Default()
		return nil
	}

	if !m.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Default()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Default()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.settings = Default()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()
	m.settings = loaded
	return nil
}

// Save 保存设置到 gdata；降级模式下静默成功
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[Settings] Settings saved")
	return nil
}

// Get 获取当前设置实例
func (m *Manager) Get() *Settings {
	return m.settings
}

// SetSoundVolume 设置音效音量（限制在 0.0 ~ 1.0）
func (m *Manager) SetSoundVolume(volume float64) {
	m.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (m *Manager) SetSoundEnabled(enabled bool) {
	m.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (m *Manager) SetFullscreen(enabled bool) {
	m.settings.Fullscreen = enabled
}

// SetInvertDragPitch 设置拖拽俯仰反转
func (m *Manager) SetInvertDragPitch(invert bool) {
	m.settings.InvertDragPitch = invert
}

// normalize 把越界或缺失的字段拉回合法范围
func (s *Settings) normalize() {
	s.SoundVolume = clampVolume(s.SoundVolume)
	if s.TextureCacheSize < 1 {
		s.TextureCacheSize = config.TextureCacheSize
	}
	def := Default()
	if s.Keys.TiltUp == "" {
		s.Keys.TiltUp = def.Keys.TiltUp
	}
	if s.Keys.TiltDown == "" {
		s.Keys.TiltDown = def.Keys.TiltDown
	}
	if s.Keys.PanLeft == "" {
		s.Keys.PanLeft = def.Keys.PanLeft
	}
	if s.Keys.PanRight == "" {
		s.Keys.PanRight = def.Keys.PanRight
	}
	if s.Keys.FovWiden == "" {
		s.Keys.FovWiden = def.Keys.FovWiden
	}
	if s.Keys.FovNarrow == "" {
		s.Keys.FovNarrow = def.Keys.FovNarrow
	}
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
