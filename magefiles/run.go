//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Imports a model file and prints its summary.
func (Run) Info(path string) error {
	mg.Deps(Check.Assimp)
	fmt.Println("Run info...")
	args := append([]string{"run"}, buildTags()...)
	args = append(args, ".", "info", "--nodes", path)
	if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}
