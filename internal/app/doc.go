// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
//
// An App loads settings and widget markup, sets every widget up once, then
// runs the tick loop: refresh data sources, update and render each widget,
// and write the composed frame as a PNG.
package app
