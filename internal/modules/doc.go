// Package modules contains all self-contained application features.
//
// Each subdirectory is a module that implements the `module.Module`
// interface. Modules are wired together in `internal/app/modules.go` and
// booted by the server at startup under the authenticated /app group.
package modules
