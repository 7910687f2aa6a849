package context

import (
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// ErrEncodingUnavailable 本地没有所需的 BPE 编码表
var ErrEncodingUnavailable = errors.New("bpe encoding table not available offline")

// LocalBpeLoader 只从本地目录读取 tiktoken 编码表，从不访问网络。
//
// 查找顺序：<Dir>/<文件名>（例如 cl100k_base.tiktoken），
// 然后是 tiktoken-go 缓存布局 <Dir>/<sha1(url)>。
// Dir 为空时依次使用 TIKTOKEN_CACHE_DIR、DATA_GYM_CACHE_DIR 和 $TMPDIR/data-gym-cache。
type LocalBpeLoader struct {
	Dir string
}

func (l LocalBpeLoader) dir() string {
	if l.Dir != "" {
		return l.Dir
	}
	for _, env := range []string{"TIKTOKEN_CACHE_DIR", "DATA_GYM_CACHE_DIR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return filepath.Join(os.TempDir(), "data-gym-cache")
}

// LoadTiktokenBpe 实现 tiktoken.BpeLoader
func (l LocalBpeLoader) LoadTiktokenBpe(file string) (map[string]int, error) {
	dir := l.dir()
	candidates := []string{
		filepath.Join(dir, path.Base(file)),
		filepath.Join(dir, fmt.Sprintf("%x", sha1.Sum([]byte(file)))),
	}

	for _, p := range candidates {
		contents, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return parseBpeRanks(contents)
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrEncodingUnavailable, path.Base(file), dir)
}

// parseBpeRanks 解析 "<base64 token> <rank>" 格式的编码表
func parseBpeRanks(contents []byte) (map[string]int, error) {
	ranks := make(map[string]int)
	for n, line := range strings.Split(string(contents), "\n") {
		if line == "" {
			continue
		}
		token, rank, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("bpe line %d: missing rank", n+1)
		}
		decoded, err := base64.StdEncoding.DecodeString(token)
		if err != nil {
			return nil, fmt.Errorf("bpe line %d: %w", n+1, err)
		}
		r, err := strconv.Atoi(strings.TrimSpace(rank))
		if err != nil {
			return nil, fmt.Errorf("bpe line %d: %w", n+1, err)
		}
		ranks[string(decoded)] = r
	}
	return ranks, nil
}

var installLoader sync.Once

// useLocalBpeLoader 把 tiktoken-go 的全局加载器换成 LocalBpeLoader
func useLocalBpeLoader() {
	installLoader.Do(func() {
		tiktoken.SetBpeLoader(LocalBpeLoader{})
	})
}

var _ tiktoken.BpeLoader = LocalBpeLoader{}
