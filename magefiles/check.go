//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
)

type Check mg.Namespace

// Verifies that the assimp development files can be found.
func (Check) Assimp() error {
	if noPkgConfig() {
		fmt.Println("ASSIMP_NOPKGCONFIG set, linking with -lassimp")
		return nil
	}
	out, err := executeCmd("pkg-config", withArgs("--modversion", "assimp"))
	if err != nil {
		return fmt.Errorf("assimp not found by pkg-config, install it or set ASSIMP_NOPKGCONFIG=1: %w", err)
	}
	version := strings.TrimSpace(out)
	if !strings.HasPrefix(version, "5.") && !strings.HasPrefix(version, "6.") {
		return fmt.Errorf("assimp %s found, 5.x or newer is required", version)
	}
	if mg.Verbose() {
		fmt.Printf("assimp %s\n", version)
	}
	return nil
}

func noPkgConfig() bool {
	v := os.Getenv("ASSIMP_NOPKGCONFIG")
	return v != "" && v != "0"
}

func buildTags() []string {
	if noPkgConfig() {
		return []string{"-tags", "assimp_nopkgconfig"}
	}
	return nil
}
