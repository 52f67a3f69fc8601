package engine

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/jupdesignstudio/VirtuShot/internal/equirect"
	"github.com/jupdesignstudio/VirtuShot/pkg/config"
)

// 加载错误分类
var (
	// ErrLoadCanceled 加载任务被取消（被更新的请求取代，或宿主退出）
	ErrLoadCanceled = errors.New("texture load canceled")

	// ErrLoadTimeout 加载超过配置的时限
	ErrLoadTimeout = errors.New("texture load timed out")
)

// LoadStatus 加载任务状态
type LoadStatus int

const (
	// LoadPending 仍在加载
	LoadPending LoadStatus = iota
	// LoadReady 解码完成，纹理可用
	LoadReady
	// LoadFailed 加载失败（含取消与超时）
	LoadFailed
)

type loadResult struct {
	img image.Image
	err error
}

// LoadTask 一次异步的全景图加载。
// 结果通过单次非阻塞投递送达：每帧调用 Poll，绝不阻塞渲染循环。
type LoadTask struct {
	SceneID string
	Ref     string

	cancel   context.CancelFunc
	result   chan loadResult
	canceled bool

	status LoadStatus
	img    image.Image
	err    error
}

// Poll 非阻塞地检查任务状态。
// 结果只在某一帧的 Poll 调用中被取走一次，此后状态保持稳定。
func (t *LoadTask) Poll() (LoadStatus, image.Image, error) {
	if t.status != LoadPending {
		return t.status, t.img, t.err
	}
	if t.canceled {
		t.status = LoadFailed
		t.err = ErrLoadCanceled
		return t.status, nil, t.err
	}

	select {
	case res := <-t.result:
		if res.err != nil {
			t.status = LoadFailed
			t.err = res.err
		} else {
			t.status = LoadReady
			t.img = res.img
		}
	default:
		// 本帧还没有结果
	}
	return t.status, t.img, t.err
}

// Cancel 取消任务。已在途的解码结果会被丢弃，后续 Poll 返回 ErrLoadCanceled。
func (t *LoadTask) Cancel() {
	if t.status != LoadPending {
		return
	}
	t.canceled = true
	if t.cancel != nil {
		t.cancel()
	}
}

// Loader 异步全景图加载器。
//
// 每次 Load 返回一个独立的可取消任务；解码结果按引用放入 LRU 缓存。
// 缓存命中仍然走异步任务投递（下一帧 Poll 到），调用方无需区分冷热路径。
type Loader struct {
	timeout time.Duration
	cache   *textureCache

	// resolve 可注入，测试时替换为同步假实现
	resolve func(ctx context.Context, ref string) (image.Image, error)
}

// NewLoader 创建加载器；timeout<=0 使用配置默认值，cacheSize<1 使用配置默认值
func NewLoader(timeout time.Duration, cacheSize int) *Loader {
	if timeout <= 0 {
		timeout = config.LoadTimeoutSeconds * time.Second
	}
	if cacheSize < 1 {
		cacheSize = config.TextureCacheSize
	}
	return &Loader{
		timeout: timeout,
		cache:   newTextureCache(cacheSize),
		resolve: equirect.Resolve,
	}
}

// Load 启动一次加载。缓存命中时结果已备好，下一次 Poll 即返回 LoadReady。
func (l *Loader) Load(sceneID, ref string) *LoadTask {
	task := &LoadTask{
		SceneID: sceneID,
		Ref:     ref,
		result:  make(chan loadResult, 1),
	}

	if img, ok := l.cache.get(ref); ok {
		log.Printf("[Loader] Cache hit for scene %s (%s)", sceneID, ref)
		task.result <- loadResult{img: img}
		return task
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	task.cancel = cancel

	go func() {
		defer cancel()
		img, err := l.resolve(ctx, ref)
		if err != nil {
			switch {
			case ctx.Err() == context.Canceled:
				err = ErrLoadCanceled
			case ctx.Err() == context.DeadlineExceeded:
				err = fmt.Errorf("load %s: %w", ref, ErrLoadTimeout)
			default:
				err = fmt.Errorf("load %s: %w", ref, err)
			}
			task.result <- loadResult{err: err}
			return
		}
		l.cache.put(ref, img)
		task.result <- loadResult{img: img}
	}()
	return task
}

// Invalidate 移除某个引用的缓存（编辑器替换场景全景图后调用）
func (l *Loader) Invalidate(ref string) {
	l.cache.remove(ref)
}

// CacheLen 当前缓存张数
func (l *Loader) CacheLen() int {
	return l.cache.len()
}

// SetCacheSize 调整缓存容量（设置项），超出的最久未用条目立即逐出
func (l *Loader) SetCacheSize(n int) {
	if n < 1 {
		n = 1
	}
	l.cache.setCap(n)
}

// textureCache 按引用缓存解码后的全景图，LRU 逐出。
// put 由加载协程调用，其余方法在帧循环里调用，所以需要互斥保护。
type textureCache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List
	items map[string]*list.Element
}

type cacheEntry struct {
	key string
	img image.Image
}

func newTextureCache(capacity int) *textureCache {
	return &textureCache{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[string]*list.Element),
	}
}

func (c *textureCache) get(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).img, true
}

func (c *textureCache) put(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).img = img
		c.ll.MoveToFront(el)
		return
	}
	c.items[key] = c.ll.PushFront(&cacheEntry{key: key, img: img})
	c.evict()
}

func (c *textureCache) remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

func (c *textureCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *textureCache) setCap(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cap = n
	c.evict()
}

func (c *textureCache) evict() {
	for c.ll.Len() > c.cap {
		oldest := c.ll.Back()
		entry := oldest.Value.(*cacheEntry)
		c.ll.Remove(oldest)
		delete(c.items, entry.key)
	}
}
