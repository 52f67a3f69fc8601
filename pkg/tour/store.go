package tour

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrTourNotFound 表示请求的漫游不存在于存储中
var ErrTourNotFound = errors.New("tour not found")

// 存储路径常量
const (
	storeObject = "tours"
	shareObject = "shares"
	indexProp   = "index"
)

// Meta 漫游的索引元数据，供画廊列表使用，无需加载完整漫游
type Meta struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	SceneCount int    `yaml:"sceneCount"`
	Rev        string `yaml:"rev"`      // 内容修订哈希，分享链接用
	CoverRef   string `yaml:"coverRef"` // 入口场景的全景图引用（缩略图）
	UpdatedAt  string `yaml:"updatedAt"`
}

// indexData 索引属性的 YAML 载荷
type indexData struct {
	Tours []Meta `yaml:"tours"`
}

// Store 漫游存储
//
// 职责：
//   - 漫游的加载、保存、删除
//   - 维护索引属性（列表页只读索引，不加载完整数据）
//
// 存储布局（gdata 对象 "tours"）：
//   - 属性 "index"：所有漫游的元数据列表
//   - 属性 "tour_<id>"：单个漫游的完整 YAML
//
// gdataManager 可为 nil（降级模式，数据仅保存在内存中）。
type Store struct {
	gdataManager *gdata.Manager
	index        *indexData
	mem          map[string][]byte // 降级模式的内存存储
}

// NewStore 创建漫游存储并加载索引
func NewStore(gdataManager *gdata.Manager) *Store {
	st := &Store{
		gdataManager: gdataManager,
		index:        &indexData{Tours: []Meta{}},
		mem:          make(map[string][]byte),
	}

	if err := st.loadIndex(); err != nil {
		// 索引损坏不是致命错误，从空索引开始
		log.Printf("[TourStore] Warning: failed to load index: %v (starting empty)", err)
	}
	return st
}

func (st *Store) propExists(prop string) bool {
	if st.gdataManager == nil {
		_, ok := st.mem[prop]
		return ok
	}
	return st.gdataManager.ObjectPropExists(storeObject, prop)
}

func (st *Store) loadProp(prop string) ([]byte, error) {
	if st.gdataManager == nil {
		data, ok := st.mem[prop]
		if !ok {
			return nil, fmt.Errorf("prop %s does not exist", prop)
		}
		return data, nil
	}
	return st.gdataManager.LoadObjectProp(storeObject, prop)
}

func (st *Store) saveProp(prop string, data []byte) error {
	if st.gdataManager == nil {
		st.mem[prop] = data
		return nil
	}
	return st.gdataManager.SaveObjectProp(storeObject, prop, data)
}

func tourProp(id string) string {
	return "tour_" + id
}

func shareProp(id string) string {
	return "share_" + id
}

func (st *Store) loadIndex() error {
	if !st.propExists(indexProp) {
		return nil
	}
	data, err := st.loadProp(indexProp)
	if err != nil {
		return fmt.Errorf("failed to load tour index: %w", err)
	}
	var idx indexData
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("failed to parse tour index: %w", err)
	}
	st.index = &idx
	return nil
}

func (st *Store) saveIndex() error {
	data, err := yaml.Marshal(st.index)
	if err != nil {
		return fmt.Errorf("failed to marshal tour index: %w", err)
	}
	if err := st.saveProp(indexProp, data); err != nil {
		return fmt.Errorf("failed to save tour index: %w", err)
	}
	return nil
}

// List 返回索引中全部漫游的元数据（副本），按修改时间倒序
func (st *Store) List() []Meta {
	metas := make([]Meta, len(st.index.Tours))
	copy(metas, st.index.Tours)
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt > metas[j].UpdatedAt
	})
	return metas
}

// Meta 返回单个漫游的索引元数据
func (st *Store) Meta(id string) (Meta, error) {
	for _, m := range st.index.Tours {
		if m.ID == id {
			return m, nil
		}
	}
	return Meta{}, fmt.Errorf("meta for %s: %w", id, ErrTourNotFound)
}

// Load 加载完整漫游
//
// 返回：
//   - *Tour: 反序列化并通过校验的漫游
//   - error: 不存在时返回 ErrTourNotFound（可用 errors.Is 判断）
func (st *Store) Load(id string) (*Tour, error) {
	if _, err := st.Meta(id); err != nil {
		return nil, err
	}
	data, err := st.loadProp(tourProp(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load tour %s: %w", id, err)
	}

	var t Tour
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tour %s: %w", id, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tour %s is corrupted: %w", id, err)
	}
	return &t, nil
}

// Save 持久化漫游并更新索引
//
// 更新修改时间，重新计算修订哈希。
//
// 返回：
//   - string: 新的修订哈希（分享链接用）
//   - error: 校验或写入失败
func (st *Store) Save(t *Tour) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("refusing to save invalid tour: %w", err)
	}
	t.Touch()

	data, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tour %s: %w", t.ID, err)
	}
	rev := Revision(data)

	if err := st.saveProp(tourProp(t.ID), data); err != nil {
		return "", fmt.Errorf("failed to save tour %s: %w", t.ID, err)
	}

	meta := Meta{
		ID:         t.ID,
		Title:      t.Title,
		SceneCount: len(t.Scenes),
		Rev:        rev,
		UpdatedAt:  t.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if start := t.StartScene(); start != nil {
		meta.CoverRef = start.TextureRef
	}

	replaced := false
	for i, m := range st.index.Tours {
		if m.ID == t.ID {
			st.index.Tours[i] = meta
			replaced = true
			break
		}
	}
	if !replaced {
		st.index.Tours = append(st.index.Tours, meta)
	}

	if err := st.saveIndex(); err != nil {
		return "", err
	}
	log.Printf("[TourStore] Saved tour %s (%s, %d scenes, rev %s)", t.ID, t.Title, len(t.Scenes), rev)
	return rev, nil
}

// Delete 从索引移除漫游
//
// 数据属性被清空（gdata 没有删除属性的操作），索引是唯一的事实来源。
func (st *Store) Delete(id string) error {
	idx := -1
	for i, m := range st.index.Tours {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("delete %s: %w", id, ErrTourNotFound)
	}

	st.index.Tours = append(st.index.Tours[:idx], st.index.Tours[idx+1:]...)
	if err := st.saveProp(tourProp(id), []byte{}); err != nil {
		return fmt.Errorf("failed to clear tour %s: %w", id, err)
	}
	if err := st.saveIndex(); err != nil {
		return err
	}
	log.Printf("[TourStore] Deleted tour %s", id)
	return nil
}

// Publish 把漫游导出为自包含分享包，写入分享对象并返回分享链接。
// 链接中的修订哈希与包内的一致；同一漫游重复发布会覆盖旧包。
func (st *Store) Publish(t *Tour) (string, error) {
	bundle, err := ExportBundle(t)
	if err != nil {
		return "", err
	}

	if st.gdataManager == nil {
		st.mem[shareProp(t.ID)] = bundle
	} else if err := st.gdataManager.SaveObjectProp(shareObject, shareProp(t.ID), bundle); err != nil {
		return "", fmt.Errorf("failed to publish tour %s: %w", t.ID, err)
	}

	raw, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tour %s: %w", t.ID, err)
	}
	link := ShareLink(t.ID, Revision(raw))
	log.Printf("[TourStore] Published tour %s -> %s", t.ID, link)
	return link, nil
}

// LoadPublished 读取此前发布的分享包，未发布时返回 ErrTourNotFound
func (st *Store) LoadPublished(id string) (*Tour, error) {
	var data []byte
	if st.gdataManager == nil {
		d, ok := st.mem[shareProp(id)]
		if !ok {
			return nil, fmt.Errorf("published bundle for %s: %w", id, ErrTourNotFound)
		}
		data = d
	} else {
		if !st.gdataManager.ObjectPropExists(shareObject, shareProp(id)) {
			return nil, fmt.Errorf("published bundle for %s: %w", id, ErrTourNotFound)
		}
		d, err := st.gdataManager.LoadObjectProp(shareObject, shareProp(id))
		if err != nil {
			return nil, fmt.Errorf("failed to load published bundle for %s: %w", id, err)
		}
		data = d
	}
	return ImportBundle(data)
}

// Revision 计算漫游序列化内容的修订哈希（前 12 位十六进制）
func Revision(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:12]
}
