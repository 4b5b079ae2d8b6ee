// Package hook implements the two stage kinds the generation pipeline is
// built from. A Waterfall threads a value through its handlers, each one
// receiving the previous handler's output. A Series runs every handler on
// the same input and discards their results, which suits handlers that
// observe or mutate shared state such as a project.FileSet.
//
// Handlers always run one at a time in registration order. A failing
// handler stops the stage and its error is returned as a *HandlerError
// naming the stage and the plugin that registered the handler.
package hook
