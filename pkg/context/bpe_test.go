package context_test

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
)

const cl100kURL = "https://openaipublic.blob.core.windows.net/encodings/cl100k_base.tiktoken"

// "YQ==" 是 "a"，"Yg==" 是 "b"
const tinyBpe = "YQ== 0\nYg== 1\n"

func TestLocalBpeLoader(t *testing.T) {
	want := map[string]int{"a": 0, "b": 1}

	t.Run("file name", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "cl100k_base.tiktoken"), []byte(tinyBpe), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := academyctx.LocalBpeLoader{Dir: dir}.LoadTiktokenBpe(cl100kURL)
		if err != nil {
			t.Fatalf("LoadTiktokenBpe() error = %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ranks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("tiktoken cache layout", func(t *testing.T) {
		dir := t.TempDir()
		key := fmt.Sprintf("%x", sha1.Sum([]byte(cl100kURL)))
		if err := os.WriteFile(filepath.Join(dir, key), []byte(tinyBpe), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("TIKTOKEN_CACHE_DIR", dir)

		got, err := academyctx.LocalBpeLoader{}.LoadTiktokenBpe(cl100kURL)
		if err != nil {
			t.Fatalf("LoadTiktokenBpe() error = %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ranks mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := academyctx.LocalBpeLoader{Dir: t.TempDir()}.LoadTiktokenBpe(cl100kURL)
		if !errors.Is(err, academyctx.ErrEncodingUnavailable) {
			t.Errorf("LoadTiktokenBpe() error = %v, want ErrEncodingUnavailable", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "cl100k_base.tiktoken"), []byte("YQ==\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := (academyctx.LocalBpeLoader{Dir: dir}).LoadTiktokenBpe(cl100kURL); err == nil {
			t.Error("expected error for a line without rank")
		}
	})
}

func TestTiktokenCounter_Offline(t *testing.T) {
	// 空缓存目录：不联网，直接报告编码表不可用
	t.Setenv("TIKTOKEN_CACHE_DIR", t.TempDir())

	_, err := academyctx.NewTiktokenCounter(academyctx.WithModel("davinci"))
	if !errors.Is(err, academyctx.ErrEncodingUnavailable) {
		t.Fatalf("NewTiktokenCounter() error = %v, want ErrEncodingUnavailable", err)
	}

	if _, ok := academyctx.DefaultTokenCounter(academyctx.WithModel("davinci")).(*academyctx.EstimatedCounter); !ok {
		t.Error("DefaultTokenCounter() should fall back to EstimatedCounter offline")
	}
}
