//go:build tools
// +build tools

// Package tools pins build-time tools in go.mod. docs/docs.go is regenerated
// from the handler annotations with:
//
//	go run github.com/swaggo/swag/cmd/swag init -g cmd/api/main.go -o docs
package tools

import (
	_ "github.com/swaggo/swag/cmd/swag"
)
