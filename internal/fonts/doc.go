// Package fonts keeps the set of font families available to text rendering.
//
// Sources are parsed with gogpu/gg/text and grouped by family name and weight.
// The registry is written only while widget setup merges its results and is
// read concurrently afterwards.
package fonts
