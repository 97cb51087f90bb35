// Package repository holds the read-only lookup tables used by the example
// endpoints.
//
// The tables live in process memory, are built once and never mutated at
// request time. Every accessor hands out copies so no caller can alter what
// the next request sees.
package repository
