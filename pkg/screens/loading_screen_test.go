package screens

import (
	"testing"

	"github.com/jupdesignstudio/VirtuShot/pkg/config"
)

func TestLoadingSeedsSampleOnEmptyStore(t *testing.T) {
	deps := newTestDeps(t)
	ls := NewLoadingScreen(deps)

	if err := ls.Update(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}

	metas := deps.Store.List()
	if len(metas) != 1 {
		t.Fatalf("存储中的漫游数 = %d, want 1", len(metas))
	}
	if metas[0].ID != "tour-sample" {
		t.Errorf("写入的漫游 = %s, want tour-sample", metas[0].ID)
	}
}

func TestLoadingKeepsExistingTours(t *testing.T) {
	deps := newTestDeps(t)
	mine := seedTour(t, deps.Store, "Mine")
	ls := NewLoadingScreen(deps)

	if err := ls.Update(0.016); err != nil {
		t.Fatalf("Update: %v", err)
	}

	metas := deps.Store.List()
	if len(metas) != 1 || metas[0].ID != mine.ID {
		t.Error("存储非空时不应写入示例漫游")
	}
}

func TestLoadingSwitchesToGalleryWhenDone(t *testing.T) {
	deps := newTestDeps(t)
	ls := NewLoadingScreen(deps)

	// 进度未满时停留在启动画面
	if err := ls.Update(config.SplashSeconds / 2); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if deps.Screens.Current() != nil {
		t.Fatal("进度未满不应切换画面")
	}
	if ls.progress <= 0 || ls.progress >= 1 {
		t.Errorf("中途进度 = %v, 应在 (0,1) 内", ls.progress)
	}

	if err := ls.Update(config.SplashSeconds); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, ok := deps.Screens.Current().(*GalleryScreen); !ok {
		t.Fatalf("当前画面 = %T, want *GalleryScreen", deps.Screens.Current())
	}
}
