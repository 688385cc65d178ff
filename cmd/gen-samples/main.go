package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/parley/internal/samples"
	"github.com/aretw0/parley/internal/validator"
	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
)

func main() {
	targetDir := filepath.Join("examples", "trees")
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Writing built-in samples to: %s\n", targetDir)

	for _, tree := range []*domain.Tree{samples.Village()} {
		if err := validator.ValidateTree(tree).Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Refusing to write invalid sample %s: %v\n", tree.ID, err)
			os.Exit(1)
		}

		path := filepath.Join(targetDir, tree.ID+".yaml")
		if err := codec.WriteFile(path, tree); err != nil {
			panic(err)
		}
		fmt.Printf("- %s\n", path)
	}
}
