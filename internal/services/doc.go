// Package services carries cross-cutting plumbing shared by pipeline stages:
// the error envelope used to classify stage failures and the context keys
// that thread recording identity through logging.
package services
