package services

import (
	"os"
)

// SiteURL 站点对外地址，用于拼接邮件里的链接
func SiteURL() string {
	if url := os.Getenv("SITE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}
