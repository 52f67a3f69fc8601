// Package tour 定义全景漫游的数据模型与持久化。
//
// 一个漫游（Tour）由若干全景场景（Scene）组成，场景之间通过
// 球面上的热点（Hotspot）互相链接。模型保持纯数据：渲染与
// 交互语义在 pkg/engine 中实现。
package tour

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jupdesignstudio/VirtuShot/pkg/geom"
)

// Hotspot 场景内的可点击热点
//
// Position 是球面坐标系中的世界空间点（通常位于全景球面上，
// 但不强制），标记的屏幕位置和大小由它投影得出。
// TargetID 为空表示"悬空热点"：仍然渲染，点击不跳转。
type Hotspot struct {
	ID       string    `yaml:"id"`
	Position geom.Vec3 `yaml:"position"`
	TargetID string    `yaml:"targetId,omitempty"` // 目标场景ID，空表示未设置
	Label    string    `yaml:"label,omitempty"`    // 悬停标签，空则回退为目标场景名
	Color    string    `yaml:"color,omitempty"`    // 十六进制颜色，如 "#4fc3f7"
}

// Scene 单个全景场景
type Scene struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	TextureRef string     `yaml:"textureRef"`           // 全景图引用：placeholder:/file:/http(s):/data:
	InitialYaw float64    `yaml:"initialYaw,omitempty"` // 进入场景时的初始朝向（度）
	Hotspots   []*Hotspot `yaml:"hotspots,omitempty"`
}

// Tour 一次完整的全景漫游
type Tour struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	StartID   string    `yaml:"startId"` // 入口场景ID
	CreatedAt time.Time `yaml:"createdAt"`
	UpdatedAt time.Time `yaml:"updatedAt"`
	Scenes    []*Scene  `yaml:"scenes"`
}

// NewID 生成带前缀的随机短ID，如 "scn-3fa9c2d1"
func NewID(prefix string) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand 失败时退化为时间戳，保持可用
		return fmt.Sprintf("%s-%08x", prefix, time.Now().UnixNano()&0xffffffff)
	}
	return prefix + "-" + hex.EncodeToString(b[:])
}

// New 创建带有一个空场景列表的漫游
func New(title string) *Tour {
	now := time.Now()
	return &Tour{
		ID:        NewID("tour"),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Scenes:    []*Scene{},
	}
}

// SceneByID 查找场景，找不到返回 nil
func (t *Tour) SceneByID(id string) *Scene {
	for _, s := range t.Scenes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// StartScene 返回入口场景；StartID 无效时回退到第一个场景
func (t *Tour) StartScene() *Scene {
	if s := t.SceneByID(t.StartID); s != nil {
		return s
	}
	if len(t.Scenes) > 0 {
		return t.Scenes[0]
	}
	return nil
}

// AddScene 追加场景；首个场景自动成为入口
func (t *Tour) AddScene(s *Scene) {
	t.Scenes = append(t.Scenes, s)
	if t.StartID == "" {
		t.StartID = s.ID
	}
}

// RemoveScene 删除场景，指向它的热点不动，此后按悬空热点渲染。
// 返回 false 表示场景不存在。入口场景被删除时入口回退到剩余的第一个场景。
func (t *Tour) RemoveScene(id string) bool {
	idx := -1
	for i, s := range t.Scenes {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	t.Scenes = append(t.Scenes[:idx], t.Scenes[idx+1:]...)

	// 指向被删场景的热点保持原样，按悬空热点渲染；
	// 是否清理由宿主自行决定
	if t.StartID == id {
		t.StartID = ""
		if len(t.Scenes) > 0 {
			t.StartID = t.Scenes[0].ID
		}
	}
	return true
}

// HotspotLabel 解析热点的显示标签：优先自定义标签，其次目标场景名。
// 两者都没有时返回空字符串，由渲染端显示"未设置目标"。
func (t *Tour) HotspotLabel(h *Hotspot) string {
	if h.Label != "" {
		return h.Label
	}
	if target := t.SceneByID(h.TargetID); target != nil {
		return target.Name
	}
	return ""
}

// Touch 更新修改时间
func (t *Tour) Touch() {
	t.UpdatedAt = time.Now()
}

// Validate 校验结构完整性。
// 悬空热点（目标场景不存在）是合法状态，不在校验范围内。
func (t *Tour) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("漫游缺少 ID")
	}
	if len(t.Scenes) == 0 {
		return fmt.Errorf("漫游 %s 没有任何场景", t.ID)
	}

	seen := make(map[string]bool, len(t.Scenes))
	for _, s := range t.Scenes {
		if s.ID == "" {
			return fmt.Errorf("漫游 %s 含有缺少 ID 的场景", t.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("场景 ID 重复: %s", s.ID)
		}
		seen[s.ID] = true
		if s.TextureRef == "" {
			return fmt.Errorf("场景 %s 缺少全景图引用", s.ID)
		}
	}

	if t.StartID != "" && !seen[t.StartID] {
		return fmt.Errorf("入口场景 %s 不存在", t.StartID)
	}
	return nil
}

// HotspotByID 查找热点，找不到返回 nil
func (s *Scene) HotspotByID(id string) *Hotspot {
	for _, h := range s.Hotspots {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// AddHotspot 在场景中追加热点
func (s *Scene) AddHotspot(h *Hotspot) {
	s.Hotspots = append(s.Hotspots, h)
}

// RemoveHotspot 删除热点，返回 false 表示热点不存在
func (s *Scene) RemoveHotspot(id string) bool {
	for i, h := range s.Hotspots {
		if h.ID == id {
			s.Hotspots = append(s.Hotspots[:i], s.Hotspots[i+1:]...)
			return true
		}
	}
	return false
}
