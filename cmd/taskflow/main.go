// Command taskflow is the terminal client for the TaskFlow dashboard API:
// log in, inspect the board, move cards, read activity logs, and search jobs.
package main

import "os"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
