// Package metadata resolves speaker metadata sidecars for recordings. A
// sidecar is a JSON file named <stem>_metadata.json written by the external
// metadata-authoring step; resolution walks an ordered candidate chain and
// the first parseable record carrying a speaker count wins.
package metadata
