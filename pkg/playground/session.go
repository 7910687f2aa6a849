package playground

import (
	"time"

	"github.com/google/uuid"
)

// Session 是单个查看者的 Playground 会话。
//
// Session 同样是值类型：Apply 返回新的会话，不修改接收者。
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Events    int       `json:"events"`
	StartedAt time.Time `json:"startedAt"`
}

// NewSession 为场景创建新会话。
func NewSession(scenario *Scenario) Session {
	return Session{
		ID:        uuid.New().String(),
		State:     NewState(scenario),
		StartedAt: time.Now(),
	}
}

// Apply 应用事件，成功时事件计数加一。
func (s Session) Apply(event Event, source ScenarioSource) (Session, error) {
	next, err := Reduce(s.State, event, source)
	if err != nil {
		return s, err
	}
	s.State = next
	s.Events++
	return s, nil
}

// Evaluate 评估会话当前状态。
func (s Session) Evaluate(selector *Selector, source ScenarioSource) (*Evaluation, error) {
	scenario, err := source.Scenario(s.State.ScenarioID)
	if err != nil {
		return nil, err
	}
	if selector == nil {
		selector = defaultSelector
	}
	return selector.Evaluate(scenario, s.State.Enabled)
}
