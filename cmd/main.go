package main

import (
	"os"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/cmd/agent"
)

func main() {
	if err := agent.Execute(); err != nil {
		os.Exit(1)
	}
}
