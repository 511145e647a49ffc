// Package component implements the widget tree.
//
// A tree is built from a closed set of node kinds. Every node answers three
// calls: Setup returns the jobs that provision it, Update feeds it the
// variable environment of the current tick, and Render turns it into a scene
// node. Embedding base supplies the no-op default for each call, so most kinds
// only implement what they need. HBox and VBox lay their children out along a
// cursor and treat Margin, SetPosition and Overlap children as layout
// instructions.
package component
