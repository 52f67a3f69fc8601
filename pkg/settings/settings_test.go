package settings

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// TestDefault 测试默认设置值
func TestDefault(t *testing.T) {
	s := Default()

	if !s.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if s.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", s.SoundVolume)
	}
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if s.TextureCacheSize != 4 {
		t.Errorf("TextureCacheSize: got %d, want 4", s.TextureCacheSize)
	}
	if s.Keys.TiltUp != "W" || s.Keys.PanLeft != "A" {
		t.Errorf("默认按键绑定错误: %+v", s.Keys)
	}
}

// TestManagerNilGdata 测试降级模式
func TestManagerNilGdata(t *testing.T) {
	m := NewManager(nil)
	if m.Get() == nil {
		t.Fatal("降级模式下 Get() 返回 nil")
	}
	if err := m.Save(); err != nil {
		t.Errorf("降级模式 Save() 应返回 nil, got %v", err)
	}
	if err := m.Load(); err != nil {
		t.Errorf("降级模式 Load() 应返回 nil, got %v", err)
	}
}

// TestLoadSaveRoundTrip 测试设置的保存与重新加载
func TestLoadSaveRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "test_virtushot_settings",
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	m1 := NewManager(gdataManager)
	m1.SetSoundVolume(0.3)
	m1.SetSoundEnabled(false)
	m1.SetFullscreen(true)
	m1.SetInvertDragPitch(true)
	m1.Get().Keys.TiltUp = "Up"
	if err := m1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	m2 := NewManager(gdataManager)
	s := m2.Get()

	if s.SoundVolume != 0.3 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.3", s.SoundVolume)
	}
	if s.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !s.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if !s.InvertDragPitch {
		t.Error("Loaded InvertDragPitch: got false, want true")
	}
	if s.Keys.TiltUp != "Up" {
		t.Errorf("Loaded Keys.TiltUp: got %s, want Up", s.Keys.TiltUp)
	}
}

// TestSetSoundVolumeClamp 测试音量范围校验
func TestSetSoundVolumeClamp(t *testing.T) {
	m := NewManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-0.5, 0.0},
		{1.5, 1.0},
	}

	for _, tt := range tests {
		m.SetSoundVolume(tt.input)
		if m.Get().SoundVolume != tt.expected {
			t.Errorf("SetSoundVolume(%v): got %v, want %v",
				tt.input, m.Get().SoundVolume, tt.expected)
		}
	}
}

// TestNormalizeFillsMissingKeys 测试缺失字段的归一化
func TestNormalizeFillsMissingKeys(t *testing.T) {
	s := &Settings{
		SoundVolume:      2.0,
		TextureCacheSize: 0,
	}
	s.normalize()

	if s.SoundVolume != 1.0 {
		t.Errorf("归一化后 SoundVolume: got %v, want 1.0", s.SoundVolume)
	}
	if s.TextureCacheSize != 4 {
		t.Errorf("归一化后 TextureCacheSize: got %d, want 4", s.TextureCacheSize)
	}
	if s.Keys.TiltUp != "W" {
		t.Errorf("归一化后 Keys.TiltUp: got %q, want W", s.Keys.TiltUp)
	}
}
