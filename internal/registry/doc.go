// Package registry is the glue between widget markup and the data sources
// compiled into the binary.
//
// Each module under modules/ registers one or more named DataSources. During
// widget setup a fetch_data declaration looks its source up by name and asks
// it for a Handle; every tick the update resolver refreshes each source once
// and reads the handles.
package registry
