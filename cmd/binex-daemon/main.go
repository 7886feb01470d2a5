package main

import (
	"fmt"
	"os"

	"github.com/teamvolt/binex/config"
	"github.com/teamvolt/binex/mq_client"
	"github.com/teamvolt/binex/workers/daemons"
)

func CreateWorker(id string) daemons.Worker {
	switch id {
	case "cron_job":
		return daemons.NewCronJob()
	default:
		return nil
	}
}

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}
	mq_client.Connect()

	ARVG := os.Args[1:]

	for _, id := range ARVG {
		fmt.Println("Start binex-daemon: " + id)
		worker := CreateWorker(id)

		worker.Start()
	}
}
