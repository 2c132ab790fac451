// cmd/contextgen/version.go
package main

const Version = "0.1.0" // major.minor.patch, bumped by dev_process_utils
