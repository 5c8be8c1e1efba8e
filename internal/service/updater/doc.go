// Package updater self-updates the controller binary from a published
// release manifest, validating a SHA-512 checksum before applying.
package updater
