// Command ovenctl runs the appliance timer controller.
package main

import "github.com/mkazantsev/ovenctl/cmd/ovenctl/cmd"

func main() {
	cmd.Execute()
}
