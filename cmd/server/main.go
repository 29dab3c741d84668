package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/kitestore-next/internal/app"
	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, bot")
	flag.Parse()

	botRequired := mode == app.ModeAll || mode == app.ModeBot
	if isMissingToken(cfg.Bot.Token) && botRequired {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("bot token is empty or a placeholder, set BOT_TOKEN before running the bot")
		}
		stdLog.Printf("warning: bot token is empty or a placeholder, the bot will not receive updates")
	}
	if cfg.Bot.AdminChatID == 0 && botRequired {
		stdLog.Printf("warning: bot admin_chat_id is unset, nobody can open the admin panel")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("application run failed: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "██╗  ██╗██╗████████╗███████╗███████╗████████╗ ██████╗ ██████╗ ███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██║ ██╔╝██║╚══██╔══╝██╔════╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + "█████╔╝ ██║   ██║   █████╗  ███████╗   ██║   ██║   ██║██████╔╝█████╗  " + ansiReset)
	fmt.Println(ansiCyan + "██╔═██╗ ██║   ██║   ██╔══╝  ╚════██║   ██║   ██║   ██║██╔══██╗██╔══╝  " + ansiReset)
	fmt.Println(ansiCyan + "██║  ██╗██║   ██║   ███████╗███████║   ██║   ╚██████╔╝██║  ██║███████╗" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝  ╚═╝╚═╝   ╚═╝   ╚══════╝╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝╚══════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "🪁 KITESTORE — catalog admin bot + storefront API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isMissingToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return true
	}
	normalized := strings.ToLower(token)
	return strings.Contains(normalized, "change-me") || strings.Contains(normalized, "your-token")
}
