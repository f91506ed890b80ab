// SPDX-License-Identifier: Apache-2.0
package main

import "github.com/snapvault/snapctl/cmd"

func main() {
	cmd.Execute()
}
