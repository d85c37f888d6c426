// Package extension implements the Evidence extension controller. It
// scaffolds a project from the Evidence template with npx degit, runs npm
// install plus the build or dev script against the project directory, passes
// arbitrary npm invocations through, and returns the static describe document
// Meltano uses for command discovery.
//
// The controller never terminates the process: every failure is logged with
// the subprocess's captured output and returned to the caller, which owns the
// exit status.
package extension
