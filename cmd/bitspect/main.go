package main

import (
	"github.com/ssargent/bitspect/cmd/bitspect/cmd"
	"github.com/ssargent/bitspect/pkg/di"
)

func main() {
	// Initialize dependency injection container
	container := di.NewContainer()

	// Inject dependencies into cmd package
	cmd.SetContainer(container)

	cmd.Execute()
}
