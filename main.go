package main

import "github.com/ranykadour/AIDomainComplianceChecker/cmd"

func main() {
	cmd.Execute()
}
