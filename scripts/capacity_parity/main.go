package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	"github.com/noah-isme/mrp-capacity-api/internal/service"
)

// capacity_parity replays capacity requests against this service and the legacy
// manufacturing application and reports verdicts that disagree.
func main() {
	var (
		goBase     string
		legacyBase string
		casesPath  string
		secret     string
		tz         string
		timeout    time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080/api/v1", "Capacity API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8069/api/v1", "Legacy capacity endpoint base URL")
	flag.StringVar(&casesPath, "cases", filepath.Join("scripts", "capacity_parity", "cases.json"), "Path to JSON cases file")
	flag.StringVar(&secret, "jwt-secret", os.Getenv("JWT_SECRET"), "Secret used to mint a planner token")
	flag.StringVar(&tz, "tz", "UTC", "Time zone claim of the minted token")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	cases, err := loadCases(casesPath)
	if err != nil {
		log.Fatalf("failed to load cases: %v", err)
	}

	r := &runner{client: &http.Client{Timeout: timeout}, goBase: goBase, legacyBase: legacyBase}
	if secret != "" {
		tokens := service.NewTokenService(service.TokenConfig{Secret: secret})
		r.token, err = tokens.Sign(models.JWTClaims{UserID: "capacity-parity", Role: models.RolePlanner, Timezone: tz}, time.Hour)
		if err != nil {
			log.Fatalf("failed to sign token: %v", err)
		}
	}

	ctx := context.Background()
	var results []outcome
	breaking, optional := 0, 0
	for _, pc := range cases {
		res := r.compare(ctx, pc)
		if !res.ok() {
			if pc.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(os.Stdout, results)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}
