// Package context 为 Context Engineering Academy 的 Playground 提供上下文窗口能力。
//
// 本包描述可切换的上下文组件（系统提示词、工具、RAG、记忆、历史、少样本示例），
// 并提供两个只读投影：
//
//   - 上下文窗口组装：按编写顺序拼接已启用组件的内容，最后追加客户消息
//   - Token 占用统计：已启用组件的 Token 之和、全部组件的 Token 之和与百分比
//
// 两个投影都是纯函数，对同样的输入总是得到逐字节相同的结果。
//
// # 基本用法
//
//	components := []context.Component{
//	    {ID: "system", Name: "System Prompt", Tokens: 120, Content: "You are a support agent..."},
//	    {ID: "rag", Name: "Retrieved Docs", Tokens: 340, Content: "Refund policy: ..."},
//	}
//
//	enabled := context.NewEnabledSet("system").Toggle("rag")
//	window := context.AssembleContext(enabled, components, "Where is my refund?")
//	usage := context.ComputeTokenUsage(enabled, components)
//
// # 上下文结构
//
// 组装后的上下文窗口格式如下，每个已启用组件一个段落：
//
//	[System Prompt]
//	<组件内容>
//
//	[Retrieved Docs]
//	<组件内容>
//
//	[User Message]
//	<客户消息>
//
// 客户消息总是出现在最后，不计入 Token 统计。
//
// EnabledSet 是不可变值：With、Without、Toggle 均返回新集合，原集合保持不变。
package context
