//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Runs go mod tidy and then builds bin/anima-import.
func (Build) Binary() error {
	mg.Deps(Check.Assimp)
	if err := goModTidy(); err != nil {
		return err
	}
	fmt.Println("Building anima-import...")
	args := append([]string{"build"}, buildTags()...)
	args = append(args, "-o", "bin/anima-import", ".")
	if _, err := executeCmd("go", withArgs(args...), withEnv("CGO_ENABLED=1"), withStream()); err != nil {
		return err
	}
	return nil
}
