//go:build cgo

package main

// Registers the sqlite3 driver for --sqlite-driver=sqlite3.
import _ "github.com/mattn/go-sqlite3"
