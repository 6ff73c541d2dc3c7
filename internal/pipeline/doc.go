// Package pipeline provides a framework for executing build steps in
// sequence.
//
// A document build moves through fixed stages: problem discovery, page
// fetching, statement extraction, appendix extraction, resource
// materialization, assembly, and typesetting. Each stage is implemented
// as a Step that receives the accumulated build report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running builds
package pipeline
