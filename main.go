// SPDX-License-Identifier: MPL-2.0

// Command icm manages Icestudio block collections.
package main

import cmd "github.com/fpgawars/icm/cmd/icm"

func main() {
	cmd.Execute()
}
