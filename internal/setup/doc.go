// Package setup runs the one-time asynchronous initialization of widgets.
//
// Components describe their initialization as jobs. A job is a finite
// sequence of stages: any number of Progress reports followed by exactly one
// Completed or Failed stage. Jobs run concurrently and only read the shared
// Context. A Completed stage carries a finalizer, the single mutation the job
// wants to make; finalizers are applied one at a time, in the order their
// jobs were discovered, once every job has finished.
package setup
