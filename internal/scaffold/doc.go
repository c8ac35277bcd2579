// Package scaffold executes a resolved plan: it copies each planned source
// from a template bundle into a new project directory, in plan order, and
// renders the bundle's help and welcome text. It powers the "kickstart new"
// command.
package scaffold
