package overlay

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/deepmerge"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/source"
)

// Resolver 从根目录按固定顺序叠加片段。
type Resolver struct {
	root        string
	cache       *Cache
	ttl         time.Duration
	loader      *source.Loader
	mergeOpts   []deepmerge.Option
	extensions  []string
	defaultName string
}

// New 创建以 root 为根目录的解析器。
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:        filepath.Clean(root),
		extensions:  DefaultExtensions,
		defaultName: DefaultName,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewCache(r.ttl)
	}
	if r.loader == nil {
		r.loader = source.NewLoader()
	}

	return r
}

// Cache 返回解析器使用的片段缓存。
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Invalidate 使本解析器根目录下的单个片段失效。
func (r *Resolver) Invalidate(folder, name string) {
	r.cache.Invalidate(r.root, folder, name)
}

// Get 依次合并各目录下的片段，后者优先。
//
// 目录顺序为根目录、随后按 includeSubFolders 给定顺序；
// 每个目录内先合并默认片段，随后按 names 给定顺序。
func (r *Resolver) Get(ctx context.Context, names, includeSubFolders []string) (map[string]any, error) {
	folders := append([]string{""}, includeSubFolders...)
	layers := append([]string{r.defaultName}, names...)

	acc := map[string]any{}
	for _, folder := range folders {
		for _, name := range layers {
			frag, err := r.fragment(ctx, folder, name)
			if err != nil {
				return nil, err
			}
			acc = deepmerge.Merge(acc, frag, r.mergeOpts...)
		}
	}

	return acc, nil
}

// fragment 加载单个片段，缺失的文件按空映射缓存。
func (r *Resolver) fragment(ctx context.Context, folder, name string) (map[string]any, error) {
	if data, ok := r.cache.get(r.root, folder, name); ok {
		return data, nil
	}

	data := map[string]any{}
	if path, ok := r.findFragment(folder, name); ok {
		loaded, err := r.loader.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load overlay fragment %s: %w", path, err)
		}
		data = loaded
		slog.Debug("Loaded overlay fragment", "folder", folder, "name", name, "path", path)
	}
	r.cache.put(r.root, folder, name, data)

	return data, nil
}

func (r *Resolver) findFragment(folder, name string) (string, bool) {
	for _, ext := range r.extensions {
		path := filepath.Join(r.root, folder, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}

	return "", false
}
