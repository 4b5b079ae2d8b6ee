// Package pkgmgr drives the npm-compatible client used by generated
// projects: installing dependencies, querying package metadata, and running
// arbitrary commands on behalf of plugins. Commands go through a Runner so
// tests can observe them without a Node.js toolchain.
package pkgmgr
