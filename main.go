// SPDX-License-Identifier: MPL-2.0

package main

import cmd "checkgate/cmd/checkgate"

func main() {
	cmd.Execute()
}
