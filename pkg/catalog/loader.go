package catalog

import (
	"bytes"
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/easyops/context-academy-go/pkg/core/errors"
	"github.com/easyops/context-academy-go/pkg/playground"
)

//go:embed scenarios/*.yaml
var builtinFS embed.FS

// Builtin 加载内置场景目录。
func Builtin(opts ...Option) (*Catalog, error) {
	scenarios, err := BuiltinScenarios()
	if err != nil {
		return nil, err
	}
	return New(scenarios, opts...)
}

// Load 从文件系统根目录下的 *.yaml / *.yml 文件加载场景目录。
func Load(fsys fs.FS, opts ...Option) (*Catalog, error) {
	scenarios, err := ReadFS(fsys)
	if err != nil {
		return nil, err
	}
	return New(scenarios, opts...)
}

// LoadFile 从单个 YAML 文件或包含 YAML 文件的目录加载场景目录。
func LoadFile(filePath string, opts ...Option) (*Catalog, error) {
	scenarios, err := ReadPath(filePath)
	if err != nil {
		return nil, err
	}
	return New(scenarios, opts...)
}

// BuiltinScenarios 解析内置场景但不做校验。
func BuiltinScenarios() ([]playground.Scenario, error) {
	sub, err := fs.Sub(builtinFS, "scenarios")
	if err != nil {
		return nil, err
	}
	return ReadFS(sub)
}

// ReadFS 解析文件系统根目录下的 *.yaml / *.yml 文件，不做校验。
//
// 文件按名称排序后依次解析，场景顺序即加载顺序。
func ReadFS(fsys fs.FS) ([]playground.Scenario, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	var scenarios []playground.Scenario
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.WrapError(err, "read "+name)
		}
		decoded, err := Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.WrapError(err, "parse "+name)
		}
		scenarios = append(scenarios, decoded...)
	}
	return scenarios, nil
}

// ReadPath 解析单个 YAML 文件或目录，不做校验。
func ReadPath(filePath string) ([]playground.Scenario, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return ReadFS(os.DirFS(filePath))
	}

	switch ext := filepath.Ext(filePath); ext {
	case ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: catalog file %s", errors.ErrInvalidInput, filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scenarios, err := Decode(f)
	if err != nil {
		return nil, errors.WrapError(err, "parse "+filePath)
	}
	return scenarios, nil
}

// Decode 解析 YAML 流，每个文档是一个场景。
//
// 未知字段视为错误，以便尽早发现拼写错误。
func Decode(r io.Reader) ([]playground.Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var scenarios []playground.Scenario
	for {
		var s playground.Scenario
		err := dec.Decode(&s)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
