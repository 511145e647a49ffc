// Package hcl provides the concrete HCL implementation of config.Loader.
// It parses widget markup files and translates their blocks into component
// trees.
//
// A file holds any number of widget blocks:
//
//	widget "cpu" {
//	  position {
//	    x        = "right"
//	    x_offset = "8px"
//	  }
//
//	  fetch_data {
//	    name   = "load"
//	    source = "goruntime"
//	    query  = "goroutines"
//	    format = "i32"
//	  }
//
//	  hbox {
//	    y_align = "center"
//	    text {
//	      content = "G ${var.load}"
//	    }
//	  }
//	}
//
// Component blocks nest in source order. Text content is an HCL template
// whose interpolations may only reference var.<name>; a variable block inside
// the text sets how a reference is formatted.
package hcl
