package screens

import (
	"strings"
	"testing"
	"time"

	"github.com/jupdesignstudio/VirtuShot/pkg/engine"
	"github.com/jupdesignstudio/VirtuShot/pkg/tour"
)

// newTestTourScreen 构造已写入存储的示例漫游画面
func newTestTourScreen(t *testing.T, editor bool) (*TourScreen, *Deps) {
	t.Helper()
	deps := newTestDeps(t)
	tr := tour.NewSample()
	if _, err := deps.Store.Save(tr); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ts, err := NewTourScreen(deps, tr, editor)
	if err != nil {
		t.Fatalf("NewTourScreen: %v", err)
	}
	deps.Screens.SwitchTo(ts)
	t.Cleanup(func() { ts.eng.Close() })
	return ts, deps
}

// pumpUntilIdle 推帧直到入口场景就位
func pumpUntilIdle(t *testing.T, ts *TourScreen) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		if err := ts.Update(1.0 / 60); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if ts.eng.Phase() == engine.PhaseIdle && ts.eng.CurrentScene() != nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("等待场景就位超时")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestTourScreenLoadsStartScene(t *testing.T) {
	ts, _ := newTestTourScreen(t, false)
	pumpUntilIdle(t, ts)

	cur := ts.eng.CurrentScene()
	if cur.ID != "scn-hall" {
		t.Errorf("当前场景 = %s, want scn-hall", cur.ID)
	}
	if ts.sceneName != "Entrance Hall" {
		t.Errorf("HUD 场景名 = %q, want %q", ts.sceneName, "Entrance Hall")
	}
}

func TestTourScreenRejectsBrokenStart(t *testing.T) {
	deps := newTestDeps(t)
	tr := tour.NewSample()
	tr.StartID = "scn-missing"

	if _, err := NewTourScreen(deps, tr, false); err == nil {
		t.Fatal("入口场景不存在时应返回错误")
	}
}

func TestTourScreenToggleMode(t *testing.T) {
	ts, _ := newTestTourScreen(t, false)
	pumpUntilIdle(t, ts)

	if ts.eng.EditorActive() {
		t.Fatal("初始应为漫游模式")
	}
	ts.toggleMode()
	if !ts.editor || !ts.eng.EditorActive() {
		t.Error("Tab 后应进入编辑模式")
	}
	ts.toggleMode()
	if ts.editor || ts.eng.EditorActive() {
		t.Error("再次 Tab 应回到漫游模式")
	}
}

func TestTourScreenSavePersists(t *testing.T) {
	ts, deps := newTestTourScreen(t, true)
	pumpUntilIdle(t, ts)

	ts.tour.Title = "Renamed"
	ts.dirty = true
	if !ts.save() {
		t.Fatal("save 应成功")
	}
	if ts.dirty {
		t.Error("保存后 dirty 应清除")
	}
	meta, err := deps.Store.Meta(ts.tour.ID)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.Title != "Renamed" {
		t.Errorf("存储中的标题 = %q, want %q", meta.Title, "Renamed")
	}
}

func TestTourScreenShareEditor(t *testing.T) {
	ts, deps := newTestTourScreen(t, true)
	pumpUntilIdle(t, ts)

	ts.share()
	if !strings.HasPrefix(ts.toast, "virtushot://tour/") {
		t.Errorf("分享提示 = %q, 应为分享链接", ts.toast)
	}
	if !strings.Contains(ts.toast, ts.tour.ID) {
		t.Error("分享链接应包含漫游ID")
	}

	// 分享包同时落入存储，按 ID 可取回
	published, err := deps.Store.LoadPublished(ts.tour.ID)
	if err != nil {
		t.Fatalf("分享后应能取回分享包: %v", err)
	}
	if published.ID != ts.tour.ID {
		t.Errorf("分享包漫游 ID = %s, want %s", published.ID, ts.tour.ID)
	}
}

func TestTourScreenShareViewerRequiresSavedTour(t *testing.T) {
	deps := newTestDeps(t)
	tr := tour.NewSample() // 故意不写入存储
	ts, err := NewTourScreen(deps, tr, false)
	if err != nil {
		t.Fatalf("NewTourScreen: %v", err)
	}
	defer ts.eng.Close()

	ts.share()
	if ts.toast != "Tour is not saved yet" {
		t.Errorf("提示 = %q, want %q", ts.toast, "Tour is not saved yet")
	}
}

func TestTourScreenSaveOnExit(t *testing.T) {
	ts, deps := newTestTourScreen(t, true)
	pumpUntilIdle(t, ts)

	if ts.SaveOnExit() {
		t.Error("无改动时不应保存")
	}

	ts.tour.Title = "Changed"
	ts.dirty = true
	if !ts.SaveOnExit() {
		t.Error("编辑模式有改动时应保存")
	}
	meta, err := deps.Store.Meta(ts.tour.ID)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.Title != "Changed" {
		t.Errorf("存储中的标题 = %q, want %q", meta.Title, "Changed")
	}
}

func TestTourScreenViewerNeverSavesOnExit(t *testing.T) {
	ts, _ := newTestTourScreen(t, false)
	pumpUntilIdle(t, ts)

	ts.dirty = true
	if ts.SaveOnExit() {
		t.Error("漫游模式不应保存")
	}
}

func TestTourScreenLeaveReturnsToGallery(t *testing.T) {
	ts, deps := newTestTourScreen(t, true)
	pumpUntilIdle(t, ts)

	ts.tour.Title = "Edited"
	ts.dirty = true
	ts.leave()

	if _, ok := deps.Screens.Current().(*GalleryScreen); !ok {
		t.Fatalf("当前画面 = %T, want *GalleryScreen", deps.Screens.Current())
	}
	meta, err := deps.Store.Meta(ts.tour.ID)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.Title != "Edited" {
		t.Error("离开编辑器时应先落盘")
	}
}

func TestTourScreenLoadErrorToast(t *testing.T) {
	deps := newTestDeps(t)
	tr := tour.New("Broken")
	sc := &tour.Scene{
		ID:         tour.NewID("scn"),
		Name:       "Bad",
		TextureRef: "file:/definitely-not-here-12345.png",
	}
	tr.AddScene(sc)
	tr.StartID = sc.ID

	ts, err := NewTourScreen(deps, tr, false)
	if err != nil {
		t.Fatalf("NewTourScreen: %v", err)
	}
	defer ts.eng.Close()

	deadline := time.Now().Add(3 * time.Second)
	for ts.toast == "" {
		if err := ts.Update(1.0 / 60); err != nil {
			t.Fatalf("Update: %v", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("等待加载失败提示超时")
		}
		time.Sleep(2 * time.Millisecond)
	}

	if ts.toast != "Failed to load scene" {
		t.Errorf("提示 = %q, want %q", ts.toast, "Failed to load scene")
	}
	if ts.eng.CurrentScene() != nil {
		t.Error("加载失败后不应有当前场景")
	}
	if ts.eng.Phase() != engine.PhaseIdle {
		t.Errorf("失败后阶段 = %v, want Idle", ts.eng.Phase())
	}
}
