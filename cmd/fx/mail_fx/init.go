package mail_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"stagekit/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587 // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
	}

	cfg := services.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: "StageKit",
		UseSSL:   port == 465,

		AppName: "StageKit",
	}

	return services.NewSMTPMailService(cfg)
}
