package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dhmueller/mcval/alert"
	"github.com/dhmueller/mcval/scan"
	"github.com/joho/godotenv"
	"github.com/xhhuango/json"
)

func main() {
	godotenv.Load()

	var (
		input   = flag.String("strategies", "strategies.json", "strategy batch to value")
		output  = flag.String("out", "valuations.json", "where to write the reports")
		botMode = flag.Bool("bot", false, "serve valuations over Slack instead of running a batch")
	)
	flag.Parse()

	if *botMode {
		appToken := os.Getenv("SLACK_APP_TOKEN")
		botToken := os.Getenv("SLACK_BOT_TOKEN")
		if appToken == "" || botToken == "" {
			log.Fatal("SLACK_APP_TOKEN and SLACK_BOT_TOKEN must be set for bot mode")
		}
		log.Fatal(alert.NewBot(appToken, botToken).Run())
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Error reading %s: %s", *input, err.Error())
	}

	var file scan.StrategyFile
	if err := json.Unmarshal(raw, &file); err != nil {
		log.Fatalf("Error parsing %s: %s", *input, err.Error())
	}

	jobs := make([]scan.Job, 0, len(file.Strategies))
	for _, desc := range file.Strategies {
		job, err := desc.Job()
		if err != nil {
			log.Fatalf("Error building job: %s", err.Error())
		}
		jobs = append(jobs, job)
	}

	fmt.Printf("Valuing %d strategies\n", len(jobs))
	results := scan.Run(jobs, true)

	reports := make([]scan.Result, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("%s: %s\n", res.Name, res.Err.Error())
			continue
		}
		fmt.Printf("%s: expected value $%.2f (P(profit) %.1f%%)\n",
			res.Name, res.Report.ExpectedValue, 100*res.Report.ProbProfit)
		reports = append(reports, res)
	}

	jreports, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		fmt.Printf("Error marshalling reports: %s\n", err.Error())
		return
	}

	if err := os.WriteFile(*output, jreports, 0644); err != nil {
		fmt.Printf("Error writing to file %s: %s\n", *output, err.Error())
		return
	}

	fmt.Printf("Successfully wrote %d reports to %s\n", len(reports), *output)
}
