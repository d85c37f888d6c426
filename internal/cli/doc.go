// Package cli defines the Cobra command tree for the evidence_extension
// binary and the pass-through entry point used by evidence_invoker. Each file
// registers one command with the root command; the commands resolve the
// project directory once, then delegate to the extension controller.
package cli
