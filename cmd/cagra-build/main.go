// Command cagra-build loads a KNNG, builds the fixed-degree proximity
// graph the cagra package describes, and saves it in KNNG or NSG format.
package main

import "github.com/cagraph/cagra/cmd/cagra-build/cmd"

func main() {
	cmd.Execute()
}
