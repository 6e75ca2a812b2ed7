// Package main provides the campuskart CLI.
//
// Install:
//
//	go install github.com/shashiranjanraj/campuskart/cmd/campuskart@latest
//
// Common commands:
//
//	campuskart serve           # start the HTTP and gRPC servers
//	campuskart seed            # seed the admin user and demo catalogue
//	campuskart route:list      # list API routes
//	campuskart queue:work      # run queue workers standalone
//	campuskart schedule:run    # run the scheduler standalone
//	campuskart db:ping         # check MongoDB connectivity
package main
