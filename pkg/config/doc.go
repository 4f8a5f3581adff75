// Package config loads the YAML configuration used by sheetform hosts:
// scanner cap, worksheet selection, renderer, validator messages, logging and
// batch concurrency.
package config
