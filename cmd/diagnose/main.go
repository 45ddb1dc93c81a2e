// Command diagnose inspects keyword files and corner-point grids.
package main

import "github.com/robert-malhotra/go-resdata/cmd/diagnose/cmd"

func main() {
	cmd.Execute()
}
