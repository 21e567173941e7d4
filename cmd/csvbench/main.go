package main

import (
	"log"

	"github.com/anvesh9652/csvbench/internal"
)

func main() {
	log.SetFlags(0)
	internal.Execute()
}
