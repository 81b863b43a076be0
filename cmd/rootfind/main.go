// rootfind solves nonlinear equations f(x) = 0 from the command line and
// serves the same solvers over HTTP.
package main

import "github.com/sandrolain/goroots/cmd/rootfind/cmd"

func main() {
	cmd.Execute()
}
