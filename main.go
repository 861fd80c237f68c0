package main

import "github.com/frahmantamala/flowcase-warehouse/cmd"

func main() {
	cmd.Execute()
}
