package main

import "github.com/gaurav-prasanna/styledoc/cmd"

func main() {
	cmd.Execute()
}
