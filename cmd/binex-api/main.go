package main

import (
	"fmt"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/mq_client"
	"github.com/teamvolt/binex/routes"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}
	if err := mq_client.Connect(); err != nil {
		fmt.Println(err.Error())
		return
	}

	r := routes.SetupRouter()
	// running
	r.Listen(":3000")
}
