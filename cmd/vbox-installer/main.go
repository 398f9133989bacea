package main

import "github.com/oshokin/installer-helpers/cmd/vbox-installer/cmd"

func main() {
	cmd.Execute()
}
