package main

import (
	"log"
	"os"
)

func main() {
	defer func() {
		os.Exit(3)
	}()

	if len(os.Args) > 5 {
		os.Exit(1) // want `вызов os.Exit в main запрещён`
	}
	if len(os.Args) > 4 {
		log.Fatal("bad") // want `вызов log.Fatal в main запрещён`
	}
	if len(os.Args) > 3 {
		log.Fatalf("bad %d", 1) // want `вызов log.Fatalf в main запрещён`
	}
	log.Println("ok")
	helper()
}

func helper() {
	os.Exit(2)
}
