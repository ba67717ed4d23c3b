package main

import "github.com/sandeepkv93/hearth/cmd/hearth/root"

func main() {
	root.Execute()
}
