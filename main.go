// SPDX-License-Identifier: MPL-2.0

// dmglicense adds a software license agreement to a macOS disk image.
package main

import cmd "github.com/invowk/dmglicense/cmd/dmglicense"

func main() {
	cmd.Execute()
}
