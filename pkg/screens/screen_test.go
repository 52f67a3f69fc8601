package screens

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubScreen 记录调用的测试画面
type stubScreen struct {
	updates int
	lastDt  float64
	draws   int
	err     error
}

func (s *stubScreen) Update(deltaTime float64) error {
	s.updates++
	s.lastDt = deltaTime
	return s.err
}

func (s *stubScreen) Draw(screen *ebiten.Image) {
	s.draws++
}

func TestManagerStartsEmpty(t *testing.T) {
	m := NewManager()
	if m.Current() != nil {
		t.Error("新管理器不应持有画面")
	}
	if err := m.Update(0.016); err == nil {
		t.Error("无画面时 Update 应返回错误")
	}
}

func TestManagerSwitchAndForward(t *testing.T) {
	m := NewManager()
	a := &stubScreen{}
	m.SwitchTo(a)

	if m.Current() != Screen(a) {
		t.Fatal("SwitchTo 后 Current 应为新画面")
	}
	if err := m.Update(0.5); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.updates != 1 || a.lastDt != 0.5 {
		t.Errorf("转发调用 = (%d, %v), want (1, 0.5)", a.updates, a.lastDt)
	}

	m.Draw(nil)
	if a.draws != 1 {
		t.Errorf("Draw 转发次数 = %d, want 1", a.draws)
	}

	b := &stubScreen{}
	m.SwitchTo(b)
	_ = m.Update(0.016)
	if a.updates != 1 || b.updates != 1 {
		t.Error("切换后旧画面不应再收到更新")
	}
}

func TestManagerPropagatesError(t *testing.T) {
	m := NewManager()
	boom := errors.New("boom")
	m.SwitchTo(&stubScreen{err: boom})

	if err := m.Update(0.016); !errors.Is(err, boom) {
		t.Errorf("Update 错误 = %v, want %v", err, boom)
	}
}
