package main

import "github.com/oshokin/installer-helpers/cmd/py-versions/cmd"

func main() {
	cmd.Execute()
}
