package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

var extensionPattern = regexp.MustCompile(`.*?\.([^.?/]+)(?:\?|$)`)

// Loader 将数据源描述加载为配置映射。
type Loader struct {
	client      *resty.Client
	timeout     time.Duration
	concurrency int
	baseDir     string
}

// NewLoader 创建加载器。
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout:     DefaultTimeout,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = resty.New()
	}

	return l
}

// Load 加载单个数据源。
//
// descriptor 支持 map[string]any 与 string，其余类型返回 [ErrUnsupportedFormat]。
func (l *Loader) Load(ctx context.Context, descriptor any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch d := descriptor.(type) {
	case map[string]any:
		return d, nil
	case string:
		return l.loadString(ctx, d)
	default:
		return nil, fmt.Errorf("%w: descriptor of type %T", ErrUnsupportedFormat, descriptor)
	}
}

// LoadAll 加载全部数据源，结果顺序与 descriptors 一致。
//
// 任一数据源失败时立即返回错误，并取消尚未完成的加载。
func (l *Loader) LoadAll(ctx context.Context, descriptors []any) ([]map[string]any, error) {
	out := make([]map[string]any, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, d := range descriptors {
		g.Go(func() error {
			m, err := l.Load(gctx, d)
			if err != nil {
				return fmt.Errorf("source #%d: %w", i+1, err)
			}
			out[i] = m

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (l *Loader) loadString(ctx context.Context, src string) (map[string]any, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrSourceUnavailable)
	}

	if strings.HasPrefix(src, "{") && strings.HasSuffix(src, "}") {
		return Parse("json", []byte(src), "inline")
	}

	u, isURL := parseURL(src)
	ext := DetectFormat(src)
	if !isSupported(ext) {
		return nil, fmt.Errorf("%w: %q for %s", ErrUnsupportedFormat, ext, src)
	}

	var (
		content []byte
		err     error
	)
	switch path := l.resolvePath(src); {
	case fileExists(path):
		content, err = os.ReadFile(path) //nolint:gosec // path is an explicit source argument
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, src, err)
		}
	case isURL && u.Scheme == "file":
		content, err = os.ReadFile(u.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, src, err)
		}
	case isURL:
		content, err = l.fetch(ctx, src)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, src)
	}

	m, err := Parse(ext, content, src)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded source", "source", src, "format", ext, "keys", len(m))

	return m, nil
}

func (l *Loader) resolvePath(src string) string {
	if l.baseDir == "" || filepath.IsAbs(src) {
		return src
	}

	return filepath.Join(l.baseDir, src)
}

// DetectFormat 推断数据源的输入格式。
//
// URL 默认为 json，路径（或 URL 查询串之前）的扩展名优先；无法推断时返回空字符串。
func DetectFormat(src string) string {
	ext := ""
	if _, ok := parseURL(src); ok {
		ext = "json"
	}
	if m := extensionPattern.FindStringSubmatch(src); m != nil {
		ext = strings.ToLower(m[1])
	}

	return ext
}

func isSupported(ext string) bool {
	_, ok := parsers[ext]
	return ok
}

func parseURL(src string) (*url.URL, bool) {
	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" {
		return nil, false
	}

	return u, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
