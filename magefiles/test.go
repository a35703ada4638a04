//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	mg.Deps(Check.Assimp)
	args := append([]string{"test"}, buildTags()...)
	args = append(args, "-race", "-count=1", "./...")
	if _, err := executeCmd("go", withArgs(args...), withEnv("CGO_ENABLED=1"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the tests of the packages that do not need the native library.
func (Test) Pure() error {
	_, err := executeCmd("go", withArgs("test", "-count=1",
		"./engine/core/...", "./engine/math/...", "./engine/scene/...", "./engine/systems/..."), withStream())
	return err
}
