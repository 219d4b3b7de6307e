package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/martin/listing-hunter/internal/chat"
	"github.com/martin/listing-hunter/internal/llm"
)

var chatCommand = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the hunting assistant",
	Long: `Chat with the assistant about Prague neighborhoods, rents and the job market.
With a message argument it answers once; without one it starts an interactive session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChatCmd,
}

var chatAPIKey string

func init() {
	chatCommand.Flags().StringVar(&chatAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	rootCmd.AddCommand(chatCommand)
}

func runChatCmd(_ *cobra.Command, args []string) error {
	apiKey := chatAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	agent := chat.NewAgent(client, llm.TierStandard)

	if len(args) == 1 {
		reply, err := agent.Reply(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}

	// Interactive session
	fmt.Println("Hunting assistant. Empty line or Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}
		reply, err := agent.Reply(ctx, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(reply)
	}
	return scanner.Err()
}
