package main

import (
	"github.com/yaoapp/mongoverify/cmd"
)

// 主程序
func main() {
	cmd.Execute()
}
