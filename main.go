// SPDX-License-Identifier: MPL-2.0

// freighter is a CLI for interpreting Cargo.toml package manifests.
package main

import cmd "freighter/cmd/freighter"

func main() {
	cmd.Execute()
}
