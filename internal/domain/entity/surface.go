package entity

import "fmt"

// SurfaceID identifies a native browsing surface. Zero means "none".
type SurfaceID int64

// Valid reports whether the id refers to a surface.
func (id SurfaceID) Valid() bool {
	return id > 0
}

// PartitionForUser returns the isolated storage partition for a user's
// browsing surfaces.
func PartitionForUser(userID int64) string {
	return fmt.Sprintf("persist:itchio-%d", userID)
}

// DevToolsMode selects where developer tools open.
type DevToolsMode string

const (
	DevToolsDetach DevToolsMode = "detach"
	DevToolsBottom DevToolsMode = "bottom"
)

// WindowDisposition tells how a page asked for a new window.
type WindowDisposition string

const (
	DispositionDefault       WindowDisposition = "default"
	DispositionForegroundTab WindowDisposition = "foreground-tab"
	DispositionBackgroundTab WindowDisposition = "background-tab"
	DispositionNewWindow     WindowDisposition = "new-window"
)
