// Package display maps timer digits, power levels and indicator state to
// the per-slot codes consumed by the external display-multiplexing driver.
package display
