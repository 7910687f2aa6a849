package playground

import (
	"fmt"

	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/core/errors"
)

// ScenarioSource 按 ID 提供场景，通常由场景目录实现。
type ScenarioSource interface {
	Scenario(id string) (*Scenario, error)
}

// State 是展示层持有的唯一可变数据：当前场景与其已启用集合。
//
// State 按值传递；Reduce 总是返回新值，不修改输入。
type State struct {
	ScenarioID string                `json:"scenarioId"`
	Enabled    academyctx.EnabledSet `json:"enabled"`
}

// Event 是一次用户交互。
type Event interface {
	isEvent()
}

// ToggleComponent 切换一个组件。
type ToggleComponent struct {
	ComponentID string `json:"componentId"`
}

// SwitchScenario 切换到另一个场景，已启用集合按新场景的默认值重建。
type SwitchScenario struct {
	ScenarioID string `json:"scenarioId"`
}

// ResetComponents 恢复当前场景的默认集合。
type ResetComponents struct{}

// EnableAllComponents 启用当前场景的全部组件。
type EnableAllComponents struct{}

func (ToggleComponent) isEvent()     {}
func (SwitchScenario) isEvent()      {}
func (ResetComponents) isEvent()     {}
func (EnableAllComponents) isEvent() {}

// NewState 为场景创建初始状态。
func NewState(scenario *Scenario) State {
	return State{
		ScenarioID: scenario.ID,
		Enabled:    scenario.InitialEnabled(),
	}
}

// Reduce 将事件应用到状态上并返回新状态。
//
// 切换未知组件返回 ErrUnknownComponentReference，切换到不存在的场景
// 返回来源给出的错误；出错时返回原状态。
func Reduce(state State, event Event, source ScenarioSource) (State, error) {
	if e, ok := event.(SwitchScenario); ok {
		next, err := source.Scenario(e.ScenarioID)
		if err != nil {
			return state, err
		}
		return NewState(next), nil
	}

	scenario, err := source.Scenario(state.ScenarioID)
	if err != nil {
		return state, err
	}

	switch e := event.(type) {
	case ToggleComponent:
		if _, ok := scenario.Component(e.ComponentID); !ok {
			return state, fmt.Errorf("scenario %q: %w: %s",
				scenario.ID, errors.ErrUnknownComponentReference, e.ComponentID)
		}
		return State{ScenarioID: state.ScenarioID, Enabled: state.Enabled.Toggle(e.ComponentID)}, nil
	case ResetComponents:
		return NewState(scenario), nil
	case EnableAllComponents:
		return State{ScenarioID: state.ScenarioID, Enabled: academyctx.AllEnabled(scenario.Components)}, nil
	default:
		return state, fmt.Errorf("%w: unsupported event %T", errors.ErrInvalidInput, event)
	}
}
