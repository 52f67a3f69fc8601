package tour

import (
	"strings"
	"testing"
)

// TestNewID 测试 ID 生成的格式与唯一性
func TestNewID(t *testing.T) {
	id := NewID("scn")
	if !strings.HasPrefix(id, "scn-") {
		t.Errorf("NewID 前缀错误: %s", id)
	}
	if len(id) != len("scn-")+8 {
		t.Errorf("NewID 长度错误: %s", id)
	}

	// 连续生成不应重复
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID("hs")
		if seen[id] {
			t.Fatalf("NewID 生成了重复 ID: %s", id)
		}
		seen[id] = true
	}
}

// TestAddSceneSetsStart 测试首个场景自动成为入口
func TestAddSceneSetsStart(t *testing.T) {
	tr := New("测试漫游")
	if tr.StartID != "" {
		t.Errorf("空漫游的 StartID 应为空, got %s", tr.StartID)
	}

	s1 := &Scene{ID: "scn-a", Name: "A", TextureRef: "placeholder:a"}
	s2 := &Scene{ID: "scn-b", Name: "B", TextureRef: "placeholder:b"}
	tr.AddScene(s1)
	tr.AddScene(s2)

	if tr.StartID != "scn-a" {
		t.Errorf("StartID: got %s, want scn-a", tr.StartID)
	}
	if tr.StartScene() != s1 {
		t.Error("StartScene() 应返回第一个场景")
	}
}

// TestRemoveSceneKeepsHotspotTargets 测试删除场景后指向它的热点保持原目标不被改写
func TestRemoveSceneKeepsHotspotTargets(t *testing.T) {
	tr := New("测试漫游")
	s1 := &Scene{ID: "scn-a", Name: "A", TextureRef: "placeholder:a"}
	s2 := &Scene{ID: "scn-b", Name: "B", TextureRef: "placeholder:b"}
	s1.AddHotspot(&Hotspot{ID: "hs-1", TargetID: "scn-b"})
	tr.AddScene(s1)
	tr.AddScene(s2)

	if !tr.RemoveScene("scn-b") {
		t.Fatal("RemoveScene 应返回 true")
	}

	h := s1.HotspotByID("hs-1")
	if h == nil {
		t.Fatal("热点不应随目标场景一起删除")
	}
	if h.TargetID != "scn-b" {
		t.Errorf("热点目标应保持 scn-b（按悬空渲染）, got %s", h.TargetID)
	}
	if tr.HotspotLabel(h) != "" {
		t.Errorf("悬空热点的标签应为空, got %s", tr.HotspotLabel(h))
	}

	// 删除不存在的场景返回 false
	if tr.RemoveScene("scn-nope") {
		t.Error("删除不存在的场景应返回 false")
	}
}

// TestRemoveStartSceneFallsBack 测试删除入口场景后入口回退
func TestRemoveStartSceneFallsBack(t *testing.T) {
	tr := New("测试漫游")
	tr.AddScene(&Scene{ID: "scn-a", TextureRef: "placeholder:a"})
	tr.AddScene(&Scene{ID: "scn-b", TextureRef: "placeholder:b"})

	tr.RemoveScene("scn-a")
	if tr.StartID != "scn-b" {
		t.Errorf("入口应回退到 scn-b, got %s", tr.StartID)
	}
}

// TestHotspotLabelResolution 测试悬停标签的解析优先级
func TestHotspotLabelResolution(t *testing.T) {
	tr := New("测试漫游")
	tr.AddScene(&Scene{ID: "scn-a", Name: "门厅", TextureRef: "placeholder:a"})
	tr.AddScene(&Scene{ID: "scn-b", Name: "展厅", TextureRef: "placeholder:b"})

	tests := []struct {
		name     string
		hotspot  *Hotspot
		expected string
	}{
		{"自定义标签优先", &Hotspot{Label: "去展厅", TargetID: "scn-b"}, "去展厅"},
		{"回退为目标场景名", &Hotspot{TargetID: "scn-b"}, "展厅"},
		{"悬空热点返回空", &Hotspot{TargetID: ""}, ""},
		{"目标不存在返回空", &Hotspot{TargetID: "scn-gone"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.HotspotLabel(tt.hotspot)
			if got != tt.expected {
				t.Errorf("HotspotLabel: got %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestValidate 测试结构校验
func TestValidate(t *testing.T) {
	valid := NewSample()
	if err := valid.Validate(); err != nil {
		t.Errorf("示例漫游应通过校验: %v", err)
	}

	tests := []struct {
		name  string
		mutat func(*Tour)
	}{
		{"缺少ID", func(tr *Tour) { tr.ID = "" }},
		{"没有场景", func(tr *Tour) { tr.Scenes = nil }},
		{"场景ID重复", func(tr *Tour) { tr.Scenes[1].ID = tr.Scenes[0].ID }},
		{"场景缺少纹理引用", func(tr *Tour) { tr.Scenes[0].TextureRef = "" }},
		{"入口场景不存在", func(tr *Tour) { tr.StartID = "scn-gone" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewSample()
			tt.mutat(tr)
			if err := tr.Validate(); err == nil {
				t.Error("损坏的漫游应校验失败")
			}
		})
	}

	// 悬空热点是合法状态
	t.Run("悬空热点合法", func(t *testing.T) {
		tr := NewSample()
		tr.Scenes[0].Hotspots[0].TargetID = "scn-gone"
		if err := tr.Validate(); err != nil {
			t.Errorf("悬空热点不应导致校验失败: %v", err)
		}
	})
}

// TestRemoveHotspot 测试热点删除
func TestRemoveHotspot(t *testing.T) {
	s := &Scene{ID: "scn-a", TextureRef: "placeholder:a"}
	s.AddHotspot(&Hotspot{ID: "hs-1"})
	s.AddHotspot(&Hotspot{ID: "hs-2"})

	if !s.RemoveHotspot("hs-1") {
		t.Fatal("RemoveHotspot 应返回 true")
	}
	if len(s.Hotspots) != 1 || s.Hotspots[0].ID != "hs-2" {
		t.Errorf("剩余热点错误: %+v", s.Hotspots)
	}
	if s.RemoveHotspot("hs-1") {
		t.Error("重复删除应返回 false")
	}
}

// TestSampleTourLinks 测试示例漫游的链接完整性
func TestSampleTourLinks(t *testing.T) {
	tr := NewSample()

	if len(tr.Scenes) != 3 {
		t.Fatalf("示例漫游应有 3 个场景, got %d", len(tr.Scenes))
	}

	// 每个热点的目标都应指向存在的场景
	for _, s := range tr.Scenes {
		for _, h := range s.Hotspots {
			if h.TargetID == "" {
				continue
			}
			if tr.SceneByID(h.TargetID) == nil {
				t.Errorf("场景 %s 的热点 %s 指向不存在的场景 %s", s.ID, h.ID, h.TargetID)
			}
		}
	}

	// 入口场景可达
	if tr.StartScene() == nil {
		t.Error("示例漫游缺少入口场景")
	}
}
