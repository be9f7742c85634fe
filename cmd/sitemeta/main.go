package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/khoahotran/me-api/adapters/apiclient"
	"github.com/khoahotran/me-api/internal/application/service"
	sitemetaUC "github.com/khoahotran/me-api/internal/application/usecase/sitemeta"
	"github.com/khoahotran/me-api/internal/config"
	"github.com/khoahotran/me-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	file := pflag.String("file", cfg.Site.HTMLPath, "HTML file to rewrite in place")
	apiBase := pflag.String("api-base", cfg.Site.APIBase, "API base URL; falls back to <meta name=\"api-base\">")
	siteURL := pflag.String("site-url", cfg.Site.URL, "public site URL; falls back to og:url")
	pflag.Parse()

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	uc := sitemetaUC.NewSiteMetaUseCase(func(base string) service.PortfolioReader {
		return apiclient.New(base, apiclient.DefaultTimeout)
	}, appLogger)

	out, err := uc.Execute(context.Background(), sitemetaUC.RewriteInput{
		HTMLPath: *file,
		APIBase:  *apiBase,
		SiteURL:  *siteURL,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Metadata update failed: %v\n", err)
		os.Exit(1)
	}
	if !out.Updated {
		fmt.Println("Missing API base URL.")
		return
	}
	fmt.Println("Metadata updated.")
}
