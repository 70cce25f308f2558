package main

import "github.com/mesh-tools/weightbake/internal/cmd"

func main() {
	cmd.Execute()
}
