// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/ahmedeladl00/aliascraft/cmd/aliascraft"

func main() {
	cmd.Execute()
}
