// Package timer implements the inner countdown state machine: remaining
// minutes/seconds, the idle/counting/paused mode, and the done level the
// appliance controller gates on.
package timer
