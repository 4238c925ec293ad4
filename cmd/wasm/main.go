//go:build js && wasm

package main

import (
	"colorchanger/internal/changer"
	"colorchanger/internal/dom/jsdom"
	"log"
)

func main() {
	if _, err := changer.Init(jsdom.New()); err != nil {
		log.Fatal(err.Error())
	}
	// keep the module alive so the click listener stays registered
	select {}
}
