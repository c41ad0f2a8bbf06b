package main

import "github.com/MeKo-Tech/iconkey/internal/cmd"

func main() {
	cmd.Execute()
}
