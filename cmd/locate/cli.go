package main

import (
	"context"
	"io"

	"github.com/fwojciec/locate/build"
	"github.com/fwojciec/locate/query"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Builder *build.Builder
	Engine  *query.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Update      bool     `short:"u" help:"Update the database"`
	Locate      []string `short:"l" sep:"none" placeholder:"TEXT" help:"Locate files matching TEXT; repeat for several queries (use --locate=-TEXT for text starting with a dash)"`
	Count       bool     `short:"c" help:"Print the number of matches instead of the paths"`
	Regex       bool     `short:"r" help:"Treat TEXT as a regular expression"`
	Verbose     bool     `short:"v" help:"Log operations to stderr"`
	Concurrency int      `short:"j" default:"4" help:"Mounts walked in parallel"`
	DB          string   `name:"db" env:"LOCATE_DB" help:"Index database path (default: ~/.locate/locate.db)"`
}

// UpdateCmd rebuilds the index.
type UpdateCmd struct{}

// LocateCmd searches the index once per query text, in order.
type LocateCmd struct {
	Texts   []string
	Regex   bool
	Count   bool
	Verbose bool
}
