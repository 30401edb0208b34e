package cache

import (
	"context"
	"errors"
	"io"
	"time"
)

// Store 负责管理磁盘上的命名缓存。磁盘布局遵循：
//
//	<StoragePath>/<CacheName>/<key>                # 实际正文
//	<StoragePath>/<CacheName>/<key>.nabha-meta     # Content-Type 等元数据
//
// 每个缓存名对应一代外壳资源，激活新版本时旧缓存整体删除。
type Store interface {
	// Open 创建（若不存在）名为 name 的缓存。
	Open(ctx context.Context, name string) error

	// Names 按字典序列出当前存在的缓存名。
	Names(ctx context.Context) ([]string, error)

	// Delete 删除整个命名缓存，返回该缓存此前是否存在。
	Delete(ctx context.Context, name string) (bool, error)

	// Get 返回一个可流式读取的缓存条目。若不存在则返回 ErrNotFound。
	Get(ctx context.Context, locator Locator) (*ReadResult, error)

	// Put 写入缓存条目。实现需通过临时文件 + rename 保证单条写入原子性，
	// 并在失败时清理临时文件。
	Put(ctx context.Context, locator Locator, body io.Reader, opts PutOptions) (*Entry, error)

	// Remove 删除单个条目。
	Remove(ctx context.Context, locator Locator) error
}

// PutOptions 控制写入过程中的可选属性。
type PutOptions struct {
	ModTime     time.Time
	ContentType string
}

// Locator 唯一定位一个缓存条目：缓存名 + 请求键（路径与查询串，精确匹配）。
type Locator struct {
	CacheName string
	Key       string
}

// Entry 表示一次缓存命中结果，包含绝对文件路径及文件信息。
type Entry struct {
	Locator     Locator `json:"locator"`
	FilePath    string  `json:"file_path"`
	SizeBytes   int64   `json:"size_bytes"`
	ContentType string  `json:"content_type,omitempty"`
	ModTime     time.Time
}

// ReadResult 组合 Entry 与正文 Reader，便于上层直接将 Body 流式返回。
type ReadResult struct {
	Entry  Entry
	Reader io.ReadSeekCloser
}

// ErrNotFound 表示缓存不存在。
var ErrNotFound = errors.New("cache entry not found")

// ErrInvalidName 表示缓存名为空或包含路径分隔符。
var ErrInvalidName = errors.New("invalid cache name")
