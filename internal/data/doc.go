// Package data defines the tagged value type that flows from data sources to
// components, the formats a binding may request, and the format-directed
// conversion and printing rules shared by every component that displays data.
//
// Conversions come in two modes. Lenient conversions never fail: an Unknown
// value or an unparsable string becomes the zero value of the target type.
// Strict conversions report a *ConversionError instead. Call sites choose the
// mode that matches how much they can tolerate a missing sensor.
package data
