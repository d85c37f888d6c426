// Package invoker runs the Node.js tool chain (npm, npx) as child processes.
// Each Invoker streams its child's output into the structured logger line by
// line and keeps a bounded tail of stdout/stderr so failures can be reported
// with context. A Registry hands out one Invoker per supported executable.
package invoker
