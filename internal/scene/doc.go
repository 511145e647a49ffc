// Package scene is the vector scene graph produced by rendering a component
// tree: translated groups of rectangles, text runs and paths, each able to
// report its bounding box in its parent's coordinates. A scene is a pure value;
// Rasterize draws it onto a gg.Context.
package scene
