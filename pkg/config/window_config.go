package config

// 窗口与界面布局配置常量

const (
	// WindowWidth 逻辑屏幕宽度（像素）
	WindowWidth = 1280

	// WindowHeight 逻辑屏幕高度（像素）
	WindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "VirtuShot 全景漫游"

	// SplashSeconds 启动画面时长（秒），进度条走满即进入画廊
	SplashSeconds float64 = 1.2

	// SidebarWidth 编辑器侧边栏宽度（像素）
	SidebarWidth = 320

	// SidebarPadding 侧边栏内边距
	SidebarPadding = 14

	// HUDBarHeight 底部信息条高度
	HUDBarHeight = 44

	// HUDFontSize 信息条文字大小
	HUDFontSize float64 = 16

	// TitleFontSize 画廊标题文字大小
	TitleFontSize float64 = 34

	// GalleryCardWidth 画廊卡片宽度
	GalleryCardWidth = 360

	// GalleryCardHeight 画廊卡片高度
	GalleryCardHeight = 200

	// GalleryThumbWidth 缩略图宽度（卡片内预览条）
	GalleryThumbWidth = 336

	// GalleryThumbHeight 缩略图高度
	GalleryThumbHeight = 132

	// GalleryColumns 画廊每行卡片数
	GalleryColumns = 3

	// GalleryGap 卡片间距
	GalleryGap = 24
)
