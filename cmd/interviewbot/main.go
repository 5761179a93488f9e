package main

import (
	"context"
	"fmt"
	"log"

	"github.com/nedz/interviewbot/bot"
	corecmd "github.com/nedz/interviewbot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.Load(path)
		},
		Bootstrap: func(ctx context.Context, carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*bot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			return bot.Bootstrap(ctx, cfg)
		},
	})
	if err != nil {
		log.Fatalf("interviewbot: %v", err)
	}
}
