// Package ports defines the core interfaces for the application.
package ports

// Dispatcher marshals work onto the single designated thread that owns all
// child set and node state. Post may be called from any goroutine; the posted
// functions run one at a time, in posting order.
type Dispatcher interface {
	Post(fn func())
}
