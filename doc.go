// Package tusl implements the core of a small, embeddable, concatenative
// scripting engine in the Forth tradition.
//
// The engine hosts a stack-based virtual machine that compiles a textual
// source language into a linear sequence of dictionary indices held in a
// byte-addressed data arena, executes that sequence against a fixed-size
// data stack, and lets a host register its own primitives alongside the
// built-in vocabulary. A VM is self-contained: nothing here is global, and
// nothing here spawns goroutines or touches a terminal — that is the host's
// job, exercised in cmd/tusl.
package tusl
