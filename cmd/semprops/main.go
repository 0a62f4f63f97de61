// Command semprops resolves semantic property names, encodes values, and
// stores property assignments for pages.
package main

import "github.com/mesh-intelligence/semprops/internal/cli"

func main() {
	cli.Execute()
}
