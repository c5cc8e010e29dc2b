// Package kernel contains the shared value objects of the dispatch domain:
// entity identifiers, geographic points, and the acting identity.
//
// Everything here is an immutable value object created through a
// constructor. Zero values fail validation so that records reconstructed
// from persistence or parsed from requests are always checked before use.
package kernel
