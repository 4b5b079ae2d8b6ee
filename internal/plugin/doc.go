// Package plugin defines what a plugin is and how plugins are found.
//
// A plugin implements Plugin: Creator registers stage handlers on a fresh
// project's pipeline, Generator contributes files to an existing project.
// Plugins are registered by id in a Registry through a Factory; the
// registry resolves built-in plugins first, then user-declared ones, so a
// later plugin always observes the hook registrations of earlier ones.
//
// The capability interfaces (CreatorAPI, GeneratorAPI) live here so plugin
// packages never import the orchestrator.
package plugin
