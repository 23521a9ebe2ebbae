package main

import (
	"github.com/Laisky/search-rag/cmd"
)

func main() {
	cmd.Execute()
}
