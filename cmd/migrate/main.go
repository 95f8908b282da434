package main

import (
	"os"
	"strings"

	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

const argLength = 2

func main() {
	cfg := config.Get()
	logger.InitLogger(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Strs("actions", helper.Actions()).Msg("Migration action is required")
	}

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("usage", strings.Join(helper.Actions(), "|")).Msg("Migration failed")
	}
}
