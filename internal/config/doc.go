// Package config defines the format-agnostic configuration model for the
// application: the widget definitions produced by a Loader, and the
// application Settings read with viper from a settings file and the
// environment.
//
// Concrete loaders, such as the HCL one, live in separate packages.
package config
