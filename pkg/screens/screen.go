// Package screens 应用画面栈：启动页、漫游画廊与漫游画面本体。
// 画面之间通过 Manager 切换，共享依赖由 Deps 注入。
package screens

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jupdesignstudio/VirtuShot/pkg/settings"
	"github.com/jupdesignstudio/VirtuShot/pkg/sfx"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// Screen 画面接口，所有画面都必须实现
type Screen interface {
	// Update 更新画面逻辑
	// deltaTime: 距上一帧的时间（秒）
	Update(deltaTime float64) error

	// Draw 绘制画面
	Draw(screen *ebiten.Image)
}

// Saveable 需要在退出前保存数据的画面实现此接口
type Saveable interface {
	// SaveOnExit 退出前保存，返回是否执行了保存
	SaveOnExit() bool
}

// Deps 各画面共享的运行时依赖，由应用装配后注入
type Deps struct {
	Screens  *Manager
	Store    *tour.Store
	Settings *settings.Manager
	Sound    *sfx.Mixer
	Fonts    *FontCache

	// Mobile 移动端为只读画廊，编辑、新建与删除入口全部隐藏
	Mobile bool
}

// Manager 画面管理器
// 持有当前画面并转发更新与绘制调用。
type Manager struct {
	current Screen
}

// NewManager 创建画面管理器
func NewManager() *Manager {
	return &Manager{}
}

// SwitchTo 切换到指定画面
func (m *Manager) SwitchTo(s Screen) {
	log.Printf("[Screens] 切换画面: %T", s)
	m.current = s
}

// Current 获取当前画面
func (m *Manager) Current() Screen {
	return m.current
}

// Update 更新当前画面
func (m *Manager) Update(deltaTime float64) error {
	if m.current == nil {
		return fmt.Errorf("no screen to update")
	}
	return m.current.Update(deltaTime)
}

// Draw 绘制当前画面
func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current == nil {
		return
	}
	m.current.Draw(screen)
}
