// Package creator drives project creation through a fixed sequence of hook
// stages that plugins tap, and installs plugins into existing projects.
//
// Stages run in this order, each starting only after the previous one
// returned:
//
//	prepare          waterfall over project.Metadata
//	resolveTemplate  waterfall over the template reference / resolved path
//	render           series over *project.RenderInput
//	beforeEmit       series over project.FileSet
//	emit             series over *project.EmitInput
//	init             series over the target directory
//	afterInit        series over the target directory
//
// The core handlers (resolver, renderer, emitter, initializer) are tapped
// before any plugin, and built-in plugins before user plugins.
package creator
