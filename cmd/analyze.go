package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/duoledger"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

const analysisModel = "gemini-2.5-flash"

type analyzeCmd struct {
	model string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "ask Gemini for a financial health summary" }
func (*analyzeCmd) Usage() string {
	return `dl analyze

  Sends the ledger (security log stripped) to Gemini and prints a short
  financial health analysis. Requires GEMINI_API_KEY in the environment.
`
}

func (a *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.model, "model", analysisModel, "Gemini model to use.")
}

func (a *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var data bytes.Buffer
	if err := duoledger.EncodeLedger(&data, db.Read().Stripped()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	prompt := fmt.Sprintf(`You are a financial assistant for a design project ledger
shared between a designer and their client. Analyze the ledger below and give a
concise summary of the project's financial health: total costs, total paid, the
outstanding balance, and any payment pattern worth noting. Keep it under 150 words.

Ledger (JSON):
%s`, data.String())

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	resp, err := client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: analysis failed: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
