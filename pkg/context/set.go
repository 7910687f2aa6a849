package context

import (
	"encoding/json"
	"sort"
	"strings"
)

// EnabledSet 是已启用组件 ID 的不可变集合。
//
// 零值是空集合，可直接使用。所有修改操作都返回新集合。
type EnabledSet struct {
	ids map[string]struct{}
}

// NewEnabledSet 使用给定 ID 创建集合，重复 ID 只保留一个。
func NewEnabledSet(ids ...string) EnabledSet {
	s := EnabledSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// AllEnabled 返回包含全部组件的集合。
func AllEnabled(components []Component) EnabledSet {
	return NewEnabledSet(ComponentIDs(components)...)
}

// Has 检查 ID 是否已启用。
func (s EnabledSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len 返回已启用组件数量。
func (s EnabledSet) Len() int {
	return len(s.ids)
}

// IsEmpty 检查集合是否为空。
func (s EnabledSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs 返回排序后的 ID 列表。
func (s EnabledSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// clone 复制底层 map，预留 extra 个额外位置。
func (s EnabledSet) clone(extra int) EnabledSet {
	ids := make(map[string]struct{}, len(s.ids)+extra)
	for id := range s.ids {
		ids[id] = struct{}{}
	}
	return EnabledSet{ids: ids}
}

// With 返回添加了给定 ID 的新集合。
func (s EnabledSet) With(ids ...string) EnabledSet {
	next := s.clone(len(ids))
	for _, id := range ids {
		next.ids[id] = struct{}{}
	}
	return next
}

// Without 返回移除了给定 ID 的新集合。
func (s EnabledSet) Without(ids ...string) EnabledSet {
	next := s.clone(0)
	for _, id := range ids {
		delete(next.ids, id)
	}
	return next
}

// Toggle 返回切换了给定 ID 的新集合：已启用则移除，未启用则添加。
func (s EnabledSet) Toggle(id string) EnabledSet {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Equal 检查两个集合是否包含相同的 ID。
func (s EnabledSet) Equal(other EnabledSet) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// EqualIDs 检查集合是否与给定 ID 列表在集合意义上相等。
//
// 列表中的重复 ID 只计一次。
func (s EnabledSet) EqualIDs(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
		seen[id] = struct{}{}
	}
	return len(seen) == len(s.ids)
}

// Unknown 返回不在给定组件列表中的 ID（排序后）。
func (s EnabledSet) Unknown(components []Component) []string {
	known := make(map[string]struct{}, len(components))
	for i := range components {
		known[components[i].ID] = struct{}{}
	}

	var unknown []string
	for _, id := range s.IDs() {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

// String 返回形如 {a, b} 的表示。
func (s EnabledSet) String() string {
	return "{" + strings.Join(s.IDs(), ", ") + "}"
}

// MarshalJSON 将集合编码为排序后的 ID 数组。
func (s EnabledSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON 从 ID 数组解码集合。
func (s *EnabledSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewEnabledSet(ids...)
	return nil
}
